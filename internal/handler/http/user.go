package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/service"
	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
	"github.com/ryan-kp-miller/the-drink-almanac-api/pkg/middleware"
	"github.com/ryan-kp-miller/the-drink-almanac-api/pkg/validator"
)

// UserHandler handles HTTP requests for user and auth endpoints.
type UserHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CredentialsRequest is the JSON request body for registration, login, and
// account deletion.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

// UserResponse is the JSON representation of a user with their favorited
// drink ids.
type UserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Favorites []int64 `json:"favorites"`
}

// --- Handlers ---

// Register handles POST /user/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body: " + err.Error()})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Favorites: []int64{},
	})
}

// Login handles POST /user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body: " + err.Error()})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	tokens, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

// Profile handles GET /user
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "user not authenticated"})
		return
	}

	user, drinkIDs, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Favorites: drinkIDs,
	})
}

// Delete handles DELETE /user. The account is identified by the credentials
// in the request body rather than by a bearer token.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body: " + err.Error()})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "user successfully deleted"})
}

// Refresh handles POST /user/refresh. The route is guarded by refresh token
// auth; the new access token is not fresh.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "user not authenticated"})
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

// --- Shared response helpers ---

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, errorResponse{Message: appErr.Message})
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"
	if status != http.StatusInternalServerError {
		message = err.Error()
	}

	writeJSON(w, status, errorResponse{Message: message})
}

func writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "request validation failed",
			Fields:  valErr.Fields(),
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
}

package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/service"
	"github.com/ryan-kp-miller/the-drink-almanac-api/pkg/middleware"
)

// FavoriteHandler handles HTTP requests for favorite endpoints. All routes
// are scoped to the authenticated user.
type FavoriteHandler struct {
	service *service.FavoriteService
	logger  *slog.Logger
}

// NewFavoriteHandler creates a new favorite HTTP handler.
func NewFavoriteHandler(svc *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{service: svc, logger: logger}
}

// Add handles POST /favorite/{drinkID}
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "user not authenticated"})
		return
	}

	drinkID, ok := drinkIDParam(w, r)
	if !ok {
		return
	}

	favorite, err := h.service.Add(r.Context(), userID, drinkID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, favorite)
}

// Get handles GET /favorite/{drinkID}
func (h *FavoriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "user not authenticated"})
		return
	}

	drinkID, ok := drinkIDParam(w, r)
	if !ok {
		return
	}

	favorite, err := h.service.Get(r.Context(), userID, drinkID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favorite)
}

// Remove handles DELETE /favorite/{drinkID}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "user not authenticated"})
		return
	}

	drinkID, ok := drinkIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, drinkID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "favorite successfully deleted"})
}

// drinkIDParam parses the {drinkID} URL parameter, writing a 400 response on
// failure.
func drinkIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "drinkID")

	drinkID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "drink id must be an integer",
			Fields:  map[string]string{"drink_id": "must be an integer"},
		})
		return 0, false
	}

	return drinkID, true
}

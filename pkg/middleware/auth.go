package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
)

type contextKeyType string

const userIDKey contextKeyType = "user_id"

// Claims represents the token claims extracted by the auth middleware.
type Claims struct {
	UserID int64
	Fresh  bool
}

// TokenValidator is a function that validates a bearer token and returns its
// claims. The service injects its own validation logic; the error it returns
// decides the response status (401 for an expired token, 422 for a malformed
// or mis-signed one) via apperrors.HTTPStatus.
type TokenValidator func(token string) (*Claims, error)

// Auth middleware validates bearer tokens and injects the authenticated user
// id into the request context. A missing Authorization header is reported as
// 401; a credential that was supplied but does not hold up is reported with
// the status carried by the validator's error.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "Missing Authorization Header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, http.StatusUnprocessableEntity, "invalid authorization header format, expected 'Bearer <token>'")
				return
			}

			claims, err := validate(parts[1])
			if err != nil {
				status := apperrors.HTTPStatus(err)
				if status == http.StatusInternalServerError {
					status = http.StatusUnprocessableEntity
				}
				writeAuthError(w, status, authErrorMessage(err))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request
// context. Returns 0 when the request was not authenticated.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// authErrorMessage prefers the message of a structured AppError over the raw
// error chain, which may carry parser internals.
func authErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "invalid or expired token"
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": message,
	})
}

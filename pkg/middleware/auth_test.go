package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
)

func okValidator(userID int64) TokenValidator {
	return func(token string) (*Claims, error) {
		return &Claims{UserID: userID, Fresh: true}, nil
	}
}

func failingValidator(err error) TokenValidator {
	return func(token string) (*Claims, error) {
		return nil, err
	}
}

func authedHandler(t *testing.T, wantUserID int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantUserID, UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(okValidator(1))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a credential")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing Authorization Header")
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(okValidator(1))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a malformed credential")
	}))

	for _, header := range []string{"token-without-scheme", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "header %q", header)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := Auth(failingValidator(apperrors.InvalidToken("token signature is invalid")))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run with an invalid token")
		}))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "token signature is invalid")
}

func TestAuth_ExpiredToken(t *testing.T) {
	handler := Auth(failingValidator(apperrors.Unauthorized("Token has expired")))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run with an expired token")
		}))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer expired.token.here")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Expired is 401, distinguishable from the 422 of a malformed token.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestAuth_ValidToken_InjectsIdentity(t *testing.T) {
	handler := Auth(okValidator(42))(authedHandler(t, 42))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_BearerSchemeCaseInsensitive(t *testing.T) {
	handler := Auth(okValidator(7))(authedHandler(t, 7))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserIDFromContext_Unset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	assert.Zero(t, UserIDFromContext(req.Context()))
}

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret", time.Hour, 720*time.Hour)
}

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(42, true)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.True(t, claims.Fresh)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTManager_RefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken(42)
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.False(t, claims.Fresh)
}

func TestJWTManager_NonFreshAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(42, false)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.False(t, claims.Fresh)
}

func TestJWTManager_RejectsWrongTokenType(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken(42)
	require.NoError(t, err)
	access, err := m.GenerateAccessToken(42, true)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, -time.Minute)

	token, err := m.GenerateAccessToken(42, true)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "expected ErrTokenExpired, got: %v", err)
}

func TestJWTManager_RejectsWrongSignature(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager("other-secret", time.Hour, 720*time.Hour)

	token, err := other.GenerateAccessToken(42, true)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsMalformedToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

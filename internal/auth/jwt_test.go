package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTAuthenticator_EmptySecret(t *testing.T) {
	_, err := NewJWTAuthenticator(TokenConfig{})
	require.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	a := newTestAuthenticator(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	token, err := a.GenerateToken("abc", RoleManager)
	require.NoError(t, err)

	parsed, err := a.ValidateAccessToken(token)
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "abc", claims["sub"])
	assert.Equal(t, "MANAGER", claims["role"])
	assert.Equal(t, "estate", claims["iss"])
	assert.EqualValues(t, fixed.Add(time.Hour).Unix(), claims["exp"])
}

func TestGenerateToken_Rejects(t *testing.T) {
	a := newTestAuthenticator(t)

	_, err := a.GenerateToken("", RoleAdmin)
	assert.Error(t, err)

	_, err = a.GenerateToken("abc", Role("SUPERUSER"))
	assert.Error(t, err)
}

func TestValidateAccessToken_ClockMovesPastExpiry(t *testing.T) {
	a := newTestAuthenticator(t)
	start := time.Now()
	a.now = func() time.Time { return start }

	token, err := a.GenerateToken("abc", RoleGuest)
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(token)
	require.NoError(t, err)

	a.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = a.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

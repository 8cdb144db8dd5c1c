package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSessionTokenRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("profile-service", "profile-service")
	now := time.Now()

	token, err := a.GenerateToken(a.NewSessionClaims("session-1", now, now.Add(time.Hour)), testSecret)
	require.NoError(t, err)

	sessionID, err := a.ParseSessionToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "session-1", sessionID)
}

func TestParseSessionTokenRejects(t *testing.T) {
	a := NewJWTAuthenticator("profile-service", "profile-service")
	now := time.Now()

	t.Run("wrong secret", func(t *testing.T) {
		token, err := a.GenerateToken(a.NewSessionClaims("session-1", now, now.Add(time.Hour)), testSecret)
		require.NoError(t, err)

		_, err = a.ParseSessionToken(token, "another-secret-another-secret-00")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		past := now.Add(-2 * time.Hour)
		token, err := a.GenerateToken(a.NewSessionClaims("session-1", past, past.Add(time.Hour)), testSecret)
		require.NoError(t, err)

		_, err = a.ParseSessionToken(token, testSecret)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("foreign audience", func(t *testing.T) {
		other := NewJWTAuthenticator("billing-service", "profile-service")
		token, err := other.GenerateToken(other.NewSessionClaims("session-1", now, now.Add(time.Hour)), testSecret)
		require.NoError(t, err)

		_, err = a.ParseSessionToken(token, testSecret)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)
	})

	t.Run("missing session id", func(t *testing.T) {
		token, err := a.GenerateToken(a.NewSessionClaims("", now, now.Add(time.Hour)), testSecret)
		require.NoError(t, err)

		_, err = a.ParseSessionToken(token, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.ParseSessionToken("not.a.token", testSecret)
		assert.Error(t, err)
	})
}

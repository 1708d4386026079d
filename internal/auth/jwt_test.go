package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService("secret", time.Minute)
	token, err := s.GenerateToken(models.User{ID: 7, Username: "admin", Role: "admin"})
	require.NoError(t, err)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID())
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	s := NewTokenService("secret", time.Minute)
	token, err := s.GenerateToken(models.User{ID: 1, Username: "u"})
	require.NoError(t, err)

	t.Run("Wrong secret", func(t *testing.T) {
		_, err := NewTokenService("other", time.Minute).ParseToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Expired", func(t *testing.T) {
		later := NewTokenService("secret", time.Minute)
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := later.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := s.ParseToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "pw"))
	assert.False(t, CheckPassword(hash, "nope"))
}

package security

import (
	"testing"
	"time"

	"gearcheck-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	t.Run("Access token carries the staff identity", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(7, "casey", domain.RoleStaff)
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, TokenTypeAccess, claims.Type)
		assert.Equal(t, int32(7), claims.UserID)
		assert.Equal(t, "casey", claims.Name)
		assert.Equal(t, domain.RoleStaff, claims.Role)
	})

	t.Run("Refresh token carries the identity needed to mint a new access token", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(7, "casey", domain.RoleManager)
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
		assert.Equal(t, int32(7), claims.UserID)
		assert.Equal(t, domain.RoleManager, claims.Role)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(7, "casey", domain.RoleStaff)
		assert.NoError(t, err)

		other := NewTokenManager("another-secret", time.Hour)
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		short := NewTokenManager("test-secret", time.Nanosecond)
		token, err := short.GenerateAccessToken(7, "casey", domain.RoleStaff)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = short.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

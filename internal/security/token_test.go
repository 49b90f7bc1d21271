package security_test

import (
	"testing"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager(t *testing.T) {
	tm := security.NewTokenManager("test-secret-key-for-unit-tests-only")

	t.Run("Round trip", func(t *testing.T) {
		token, err := tm.GenerateToken(7, domain.RoleCustomer, time.Hour)
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), claims.ActorID)
		assert.Equal(t, domain.RoleCustomer, claims.Role)
	})

	t.Run("Expired token", func(t *testing.T) {
		token, err := tm.GenerateToken(7, domain.RoleShop, -time.Minute)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := security.NewTokenManager("a-completely-different-signing-key")
		token, err := other.GenerateToken(7, domain.RoleCustomer, time.Hour)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("System role not accepted from tokens", func(t *testing.T) {
		token, err := tm.GenerateToken(1, domain.RoleSystem, time.Hour)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := tm.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}

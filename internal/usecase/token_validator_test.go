//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"cardshop/internal/domain/user"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/pkg/jwt"
	"cardshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour, "cardshop")
	validator := usecase.NewTokenValidator(svc)

	t.Run("returns caller from a valid token", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, user.RoleStaff)
		require.NoError(t, err)

		caller, err := validator.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, usecase.Caller{UserID: userID, Role: user.RoleStaff}, caller)
	})

	t.Run("unknown role is an invalid token", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), user.Role("guest"))
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)

		require.Error(t, err)
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})

	t.Run("passes through jwt errors", func(t *testing.T) {
		_, err := validator.ValidateToken("not-a-token")

		require.Error(t, err)
		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})
}

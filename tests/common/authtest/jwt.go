//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"cardshop/internal/domain/user"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the login service would, signed with the
// configured secret.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration, h.cfg.Issuer)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	// Past the validator's clock-skew leeway.
	service := jwt.NewService(h.cfg.Secret, -time.Minute, h.cfg.Issuer)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// Staff and Admin return a token for a fresh user id with that role.
func (h *JWTHelper) Staff(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), user.RoleStaff)
}

func (h *JWTHelper) Admin(t *testing.T) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), user.RoleAdmin)
}

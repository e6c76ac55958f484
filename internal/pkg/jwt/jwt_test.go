//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"cardshop/internal/domain/user"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret = "test-secret"
	issuer = "cardshop-auth"
)

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour, issuer)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, user.RoleStaff)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	userID := uuid.New()
	mint := func(s *jwt.Service) string {
		token, err := s.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)
		return token
	}

	noneToken, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, jwt.Claims{
		UserID: userID,
		Role:   "admin",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		errIs error
	}{
		{name: "expired beyond leeway", token: mint(jwt.NewService(secret, -time.Minute, issuer)), errIs: jwt.ErrExpiredToken},
		{name: "other secret", token: mint(jwt.NewService("other", time.Hour, issuer)), errIs: jwt.ErrInvalidToken},
		{name: "other issuer", token: mint(jwt.NewService(secret, time.Hour, "someone-else")), errIs: jwt.ErrInvalidToken},
		{name: "unsigned", token: noneToken, errIs: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", errIs: jwt.ErrInvalidToken},
	}

	svc := jwt.NewService(secret, time.Hour, issuer)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, errs.Is(err, tt.errIs), "got %v", err)
		})
	}
}

func TestService_ValidateToken_SkewWithinLeeway(t *testing.T) {
	svc := jwt.NewService(secret, -10*time.Second, "")
	token, err := svc.GenerateToken(uuid.New(), user.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.NoError(t, err)
}

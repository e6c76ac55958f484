package usecase

import (
	"cardshop/internal/domain/user"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID uuid.UUID
	Role   user.Role
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Caller, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

// ValidateToken rejects tokens carrying a role this service does not know,
// marked as jwt.ErrInvalidToken so callers treat them like a bad signature.
func (v *jwtTokenValidator) ValidateToken(tokenString string) (Caller, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Caller{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Caller{}, errs.Mark(errs.Wrapf(err, "token for user %s", claims.UserID), jwt.ErrInvalidToken)
	}
	return Caller{UserID: claims.UserID, Role: role}, nil
}

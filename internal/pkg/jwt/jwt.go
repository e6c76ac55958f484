package jwt

import (
	"errors"
	"time"

	"cardshop/internal/domain/user"
	"cardshop/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.New("invalid token")
	ErrExpiredToken = errs.New("token expired")
)

// leeway absorbs clock drift between this service and the login service.
const leeway = 30 * time.Second

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Service validates access tokens issued by the login service. It can also
// mint them, which tests and local tooling use.
type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
	issuer        string
	parser        *jwt.Parser
}

func NewService(secretKey string, tokenDuration time.Duration, issuer string) *Service {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		issuer:        issuer,
		parser:        jwt.NewParser(opts...),
	}
}

func (s *Service) GenerateToken(userID uuid.UUID, role user.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", errs.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	default:
		return nil, errs.Mark(errs.Wrap(err, "failed to parse token"), ErrInvalidToken)
	}

	if claims.UserID == uuid.Nil {
		return nil, errs.Mark(errs.New("token has no user id"), ErrInvalidToken)
	}
	return claims, nil
}

package usecase

import (
	"rinkbook/internal/domain/user"
	"rinkbook/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator turns a raw bearer token into the identity the auth
// middleware attaches to the request context.
type TokenValidator interface {
	ValidateToken(raw string) (uuid.UUID, user.Role, error)
}

type tokenValidator struct {
	jwt *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidator{jwt: jwtService}
}

func (t *tokenValidator) ValidateToken(raw string) (uuid.UUID, user.Role, error) {
	claims, err := t.jwt.ValidateToken(raw)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, role, nil
}

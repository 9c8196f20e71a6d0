package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"campusparties/internal/domain"
)

// jwtClaims are the claims the identity provider puts in its access tokens.
// The subject is the provider's opaque user identifier.
type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns an IdentityVerifier that validates HS256 tokens
// signed by the identity provider with the given shared secret.
func NewJWTVerifier(secret string) domain.IdentityVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(token string) (*domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &domain.Identity{ID: claims.Subject, Email: claims.Email}, nil
}

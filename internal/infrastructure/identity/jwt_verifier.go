// Package identity implements the token-verifier port over signed JWTs.
package identity

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
)

// JWTVerifier validates HS256-signed bearer tokens carrying a verified
// email claim. It satisfies ports.TokenVerifier.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the email it asserts.
// Any parse, signature, or claim failure maps to domain.ErrUnauthorized.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.ErrUnauthorized
	}
	return email, nil
}

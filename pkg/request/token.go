package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoBearerToken is returned when a request has no bearer token.
var ErrNoBearerToken = errors.New("request: no bearer token")

// WithToken signs claims as an HS256 JWT and sends it as a bearer token.
func (f *Factory) WithToken(claims jwt.MapClaims, key []byte) *Factory {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		f.fail(fmt.Errorf("request: sign token: %w", err))
		return f
	}
	return f.Header("Authorization", "Bearer "+token)
}

// BearerClaims verifies the HS256 bearer token of r and returns its claims.
func BearerClaims(r *Request, key []byte) (jwt.MapClaims, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, ErrNoBearerToken
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("request: parse bearer token: %w", err)
	}
	return claims, nil
}

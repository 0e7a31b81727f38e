package auth

import (
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token has no exp claim")

// tokenExpiry читает exp без проверки подписи, у клиента нет секретов сервера.
func tokenExpiry(token string) (int64, error) {
	claims := &gojwt.RegisteredClaims{}
	if _, _, err := gojwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return 0, errNoExpiry
	}
	return claims.ExpiresAt.Unix(), nil
}

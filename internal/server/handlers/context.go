package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

// AccessTokenKey ключ для хранения bearer токена в контексте
const AccessTokenKey contextKey = "access_token"

// WithAccessToken кладет bearer токен в контекст запроса
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, AccessTokenKey, token)
}

// GetAccessToken извлекает bearer токен из контекста запроса
func GetAccessToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(AccessTokenKey).(string)
	return token, ok && token != ""
}

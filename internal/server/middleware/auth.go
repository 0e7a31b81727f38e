package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/handlers"
)

// AuthMiddleware создает middleware для извлечения bearer токена.
// Токен кладется в контекст без проверки: подпись и срок действия проверяет auth.Gate.
func AuthMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "Missing Authorization header")
				handlers.SendError(logger, w, "No authorization header provided", http.StatusBadRequest)
				return
			}

			// Ожидаем формат: "Bearer <token>", токен - второе слово
			token := bearerToken(authHeader)
			if token == "" {
				logger.WarnContext(r.Context(), "Authorization header without token")
				handlers.SendError(logger, w, "No access token provided", http.StatusBadRequest)
				return
			}

			// Передаем запрос дальше с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(handlers.WithAccessToken(r.Context(), token)))
		})
	}
}

// bearerToken возвращает второе слово заголовка или пустую строку
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

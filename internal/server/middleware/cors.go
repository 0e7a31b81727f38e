package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware создает middleware, разрешающий кросс-доменные запросы с указанных origin.
// "*" разрешает любой origin.
func CORSMiddleware(logger *slog.Logger, allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	})

	logger.Debug("CORS configured", slog.Any("origins", allowedOrigins))

	return c.Handler
}

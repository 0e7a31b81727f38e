package handlers

import (
	"log/slog"
	"net/http"

	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	responder
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		version:   version,
	}
}

// Health обрабатывает GET /health
// Health check endpoint для мониторинга
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	}, http.StatusOK)
}

// NotFound отвечает на запросы к неизвестным маршрутам
func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, "Route not found", http.StatusNotFound)
}

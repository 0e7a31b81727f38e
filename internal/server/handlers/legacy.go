package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/auth"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// LegacyAuthenticator проверяет учетные данные из заголовка x-api-auth
type LegacyAuthenticator interface {
	Authenticate(ctx context.Context, header string) (*auth.Identity, error)
	UserData(ctx context.Context, header string) ([]string, error)
}

// LegacyHandler обрабатывает v1 запросы
type LegacyHandler struct {
	responder
	auth LegacyAuthenticator
}

// NewLegacyHandler создает новый handler для v1 схемы
func NewLegacyHandler(logger *slog.Logger, authenticator LegacyAuthenticator) *LegacyHandler {
	return &LegacyHandler{
		responder: responder{logger: logger},
		auth:      authenticator,
	}
}

// Auth обрабатывает GET /v1/auth
func (h *LegacyHandler) Auth(w http.ResponseWriter, r *http.Request) {
	identity, err := h.auth.Authenticate(r.Context(), r.Header.Get(api.HeaderLegacyAuth))
	if err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.LegacyAuthResponse{
		Role:     identity.Role,
		Username: identity.Username,
	}, http.StatusOK)
}

// UserData обрабатывает GET /v1/userdata
func (h *LegacyHandler) UserData(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.auth.UserData(r.Context(), r.Header.Get(api.HeaderLegacyAuth))
	if err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.VehicleListResponse{Vehicles: vehicles}, http.StatusOK)
}

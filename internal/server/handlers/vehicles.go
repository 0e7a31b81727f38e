package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// VehicleGate дает доступ к списку машин по access токену
type VehicleGate interface {
	ListVehicles(ctx context.Context, accessToken string) (string, []string, error)
	AddVehicle(ctx context.Context, accessToken string, in *models.VehicleInput) ([]models.Vehicle, error)
}

// VehicleHandler обрабатывает v2 запросы к списку машин.
// Ожидает токен в контексте, см. middleware.AuthMiddleware.
type VehicleHandler struct {
	responder
	gate VehicleGate
}

// NewVehicleHandler создает новый handler для списка машин
func NewVehicleHandler(logger *slog.Logger, gate VehicleGate) *VehicleHandler {
	return &VehicleHandler{
		responder: responder{logger: logger},
		gate:      gate,
	}
}

// UserData обрабатывает GET /v2/userdata
func (h *VehicleHandler) UserData(w http.ResponseWriter, r *http.Request) {
	token, ok := GetAccessToken(r.Context())
	if !ok {
		h.sendError(w, "No access token provided", http.StatusBadRequest)
		return
	}

	username, vehicles, err := h.gate.ListVehicles(r.Context(), token)
	if err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.UserDataResponse{
		Username: username,
		Vehicles: vehicles,
	}, http.StatusOK)
}

// AddVehicle обрабатывает POST /v2/add-vehicle
func (h *VehicleHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	token, ok := GetAccessToken(r.Context())
	if !ok {
		h.sendError(w, "No access token provided", http.StatusBadRequest)
		return
	}

	var req api.AddVehicleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	vehicles, err := h.gate.AddVehicle(r.Context(), token, req.Vehicle)
	if err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.AddVehicleResponse{
		Message:  "Vehicle added successfully",
		Vehicles: vehicles,
	}, http.StatusOK)
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/auth"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// SessionService реализует v2 сценарии входа
type SessionService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	sessions SessionService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, sessions SessionService) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		sessions:  sessions,
	}
}

// Register обрабатывает POST /v2/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.CredentialsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.sessions.Register(r.Context(), req.Username, req.Password); err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "User registered successfully"}, http.StatusCreated)
}

// Login обрабатывает POST /v2/auth
// Аутентификация пользователя
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.CredentialsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.LoginResponse{
		Message:      "Authentication successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, http.StatusOK)
}

// Refresh обрабатывает POST /v2/refresh
// Выпуск нового access token по refresh token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	access, err := h.sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.RefreshResponse{AccessToken: access}, http.StatusOK)
}

// Logout обрабатывает POST /v2/logout
// Отзыв refresh token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.sessions.Logout(r.Context(), req.RefreshToken); err != nil {
		h.sendAuthError(w, r, err)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "Logged out successfully"}, http.StatusOK)
}

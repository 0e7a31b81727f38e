package api

import "github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"

// HeaderLegacyAuth заголовок legacy схемы: base64("username:password")
const HeaderLegacyAuth = "x-api-auth"

// CredentialsRequest представляет запрос на регистрацию или вход
type CredentialsRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде
}

// MessageResponse представляет ответ, содержащий только сообщение
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse представляет ответ на успешный вход
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`  // JWT access token, 2 часа
	RefreshToken string `json:"refreshToken"` // JWT refresh token, 7 дней
}

// RefreshRequest представляет запрос на обновление access token или выход
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse представляет ответ с новым access token
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// LegacyAuthResponse представляет ответ GET /v1/auth
type LegacyAuthResponse struct {
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
}

// VehicleListResponse представляет ответ GET /v1/userdata
type VehicleListResponse struct {
	Vehicles []string `json:"vehicles"`
}

// UserDataResponse представляет ответ GET /v2/userdata
type UserDataResponse struct {
	Username string   `json:"username"`
	Vehicles []string `json:"vehicles"`
}

// AddVehicleRequest представляет запрос POST /v2/add-vehicle
type AddVehicleRequest struct {
	Vehicle *models.VehicleInput `json:"vehicle"`
}

// AddVehicleResponse представляет ответ с обновленным списком машин
type AddVehicleResponse struct {
	Message  string           `json:"message"`
	Vehicles []models.Vehicle `json:"vehicles"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

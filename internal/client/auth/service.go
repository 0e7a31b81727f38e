// Package auth управляет v2 сессией CLI клиента: токены хранятся локально и обновляются по refresh token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	clientapi "github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/api"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/storage"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/validation"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// ErrNotAuthenticated возвращается, когда локальной сессии нет или refresh token истек
var ErrNotAuthenticated = errors.New("not authenticated, run 'login' first")

// APIClient часть HTTP клиента, которая нужна сессии
type APIClient interface {
	Register(ctx context.Context, req api.CredentialsRequest) (*api.MessageResponse, error)
	Login(ctx context.Context, req api.CredentialsRequest) (*api.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) (*api.MessageResponse, error)
	UserData(ctx context.Context, accessToken string) (*api.UserDataResponse, error)
	AddVehicle(ctx context.Context, accessToken string, vehicle *models.VehicleInput) (*api.AddVehicleResponse, error)
}

// Service предоставляет функции авторизации
type Service struct {
	apiClient APIClient
	store     storage.AuthStorage
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, store storage.AuthStorage) *Service {
	return &Service{
		apiClient: apiClient,
		store:     store,
		now:       time.Now,
	}
}

// Register регистрирует нового пользователя. Сессия не создается.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	if _, err := s.apiClient.Register(ctx, api.CredentialsRequest{Username: username, Password: password}); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// Login выполняет вход и сохраняет пару токенов
func (s *Service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Login(ctx, api.CredentialsRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	accessExp, err := tokenExpiry(resp.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	refreshExp, err := tokenExpiry(resp.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	authData := &storage.AuthData{
		Username:         username,
		AccessToken:      resp.AccessToken,
		RefreshToken:     resp.RefreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}
	if err := s.store.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}
	return authData, nil
}

// Refresh получает новый access token и сохраняет его. Refresh token не меняется.
func (s *Service) Refresh(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Refresh(ctx, authData.RefreshToken)
	if err != nil {
		// сервер больше не знает этот refresh token
		if clientapi.IsStatus(err, http.StatusForbidden) {
			_ = s.store.DeleteAuth(ctx)
			return nil, fmt.Errorf("%w: session was revoked", ErrNotAuthenticated)
		}
		return nil, fmt.Errorf("refresh failed: %w", err)
	}

	accessExp, err := tokenExpiry(resp.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	authData.AccessToken = resp.AccessToken
	authData.AccessExpiresAt = accessExp
	if err := s.store.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}
	return authData, nil
}

// Vehicles возвращает список машин текущего пользователя
func (s *Service) Vehicles(ctx context.Context) (*api.UserDataResponse, error) {
	var resp *api.UserDataResponse
	err := s.withAccess(ctx, func(token string) error {
		var err error
		resp, err = s.apiClient.UserData(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddVehicle добавляет машину текущему пользователю
func (s *Service) AddVehicle(ctx context.Context, vehicle *models.VehicleInput) (*api.AddVehicleResponse, error) {
	if err := validation.ValidateVehicle(vehicle); err != nil {
		return nil, err
	}

	var resp *api.AddVehicleResponse
	err := s.withAccess(ctx, func(token string) error {
		var err error
		resp, err = s.apiClient.AddVehicle(ctx, token, vehicle)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout отзывает refresh token на сервере и удаляет локальную сессию.
// Если сервер уже не знает токен, локальная сессия все равно удаляется.
func (s *Service) Logout(ctx context.Context) error {
	authData, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	if _, err := s.apiClient.Logout(ctx, authData.RefreshToken); err != nil && !clientapi.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("logout failed: %w", err)
	}

	if err := s.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	return nil
}

// Status возвращает сохраненную сессию, даже если она истекла.
func (s *Service) Status(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return authData, nil
}

// session возвращает сессию с живым refresh token
func (s *Service) session(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}
	if authData.RefreshExpired(s.now()) {
		return nil, fmt.Errorf("%w: session expired", ErrNotAuthenticated)
	}
	return authData, nil
}

// withAccess вызывает fn с действующим access token.
// Истекший токен обновляется заранее, а на 403 делается одна повторная попытка после refresh.
func (s *Service) withAccess(ctx context.Context, fn func(token string) error) error {
	authData, err := s.session(ctx)
	if err != nil {
		return err
	}

	if authData.AccessExpired(s.now()) {
		if authData, err = s.Refresh(ctx); err != nil {
			return err
		}
	}

	err = fn(authData.AccessToken)
	if !clientapi.IsStatus(err, http.StatusForbidden) {
		return err
	}

	if authData, err = s.Refresh(ctx); err != nil {
		return err
	}
	return fn(authData.AccessToken)
}

func validateCredentials(username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	return nil
}

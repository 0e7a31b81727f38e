package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// StatusError ответ сервера с кодом вне 2xx
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsStatus сообщает, что err это ответ сервера с указанным кодом
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.CredentialsRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.doRequest(ctx, http.MethodPost, "/v2/register", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя и возвращает пару токенов
func (c *Client) Login(ctx context.Context, req api.CredentialsRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/v2/auth", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh получает новый access token по refresh token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error) {
	var resp api.RefreshResponse
	req := api.RefreshRequest{RefreshToken: refreshToken}
	if err := c.doRequest(ctx, http.MethodPost, "/v2/refresh", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh token
func (c *Client) Logout(ctx context.Context, refreshToken string) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	req := api.RefreshRequest{RefreshToken: refreshToken}
	if err := c.doRequest(ctx, http.MethodPost, "/v2/logout", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("logout request failed: %w", err)
	}
	return &resp, nil
}

// UserData получает список машин владельца access token
func (c *Client) UserData(ctx context.Context, accessToken string) (*api.UserDataResponse, error) {
	var resp api.UserDataResponse
	if err := c.doRequest(ctx, http.MethodGet, "/v2/userdata", bearer(accessToken), nil, &resp); err != nil {
		return nil, fmt.Errorf("userdata request failed: %w", err)
	}
	return &resp, nil
}

// AddVehicle добавляет машину в список владельца access token
func (c *Client) AddVehicle(ctx context.Context, accessToken string, vehicle *models.VehicleInput) (*api.AddVehicleResponse, error) {
	var resp api.AddVehicleResponse
	req := api.AddVehicleRequest{Vehicle: vehicle}
	if err := c.doRequest(ctx, http.MethodPost, "/v2/add-vehicle", bearer(accessToken), req, &resp); err != nil {
		return nil, fmt.Errorf("add vehicle request failed: %w", err)
	}
	return &resp, nil
}

// LegacyAuth проверяет пару логин/пароль по схеме v1
func (c *Client) LegacyAuth(ctx context.Context, username, password string) (*api.LegacyAuthResponse, error) {
	var resp api.LegacyAuthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/v1/auth", legacyAuth(username, password), nil, &resp); err != nil {
		return nil, fmt.Errorf("legacy auth request failed: %w", err)
	}
	return &resp, nil
}

// LegacyUserData получает список машин по схеме v1
func (c *Client) LegacyUserData(ctx context.Context, username, password string) (*api.VehicleListResponse, error) {
	var resp api.VehicleListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/v1/userdata", legacyAuth(username, password), nil, &resp); err != nil {
		return nil, fmt.Errorf("legacy userdata request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func legacyAuth(username, password string) map[string]string {
	return map[string]string{
		api.HeaderLegacyAuth: base64.StdEncoding.EncodeToString([]byte(username + ":" + password)),
	}
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, headers map[string]string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			se.Message = errResp.Message
		}
		return se
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

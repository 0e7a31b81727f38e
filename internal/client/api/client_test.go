package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:3000"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.CredentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new@autoninjas.com", req.Username)
		assert.Equal(t, "pw", req.Password)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.MessageResponse{Message: "User registered successfully"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Register(context.Background(), api.CredentialsRequest{Username: "new@autoninjas.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", resp.Message)
}

// TestClient_Register_Error проверяет обработку ошибок при регистрации
func TestClient_Register_Error(t *testing.T) {
	tests := []struct {
		responseBody   any
		name           string
		expectedErrMsg string
		statusCode     int
	}{
		{
			name:           "User already exists",
			statusCode:     http.StatusBadRequest,
			responseBody:   api.ErrorResponse{Error: "Bad Request", Message: "User already exists"},
			expectedErrMsg: "server error (400): User already exists",
		},
		{
			name:           "Internal server error",
			statusCode:     http.StatusInternalServerError,
			responseBody:   "Internal Server Error",
			expectedErrMsg: "request failed with status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if errResp, ok := tt.responseBody.(api.ErrorResponse); ok {
					_ = json.NewEncoder(w).Encode(errResp)
				} else {
					_, _ = w.Write([]byte(tt.responseBody.(string)))
				}
			}))
			defer server.Close()

			client := NewClient(server.URL)
			resp, err := client.Register(context.Background(), api.CredentialsRequest{Username: "u", Password: "p"})

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
			assert.True(t, IsStatus(err, tt.statusCode))
		})
	}
}

// TestClient_Login проверяет получение пары токенов
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/auth", r.URL.Path)

		_ = json.NewEncoder(w).Encode(api.LoginResponse{
			Message:      "Authentication successful",
			AccessToken:  "access",
			RefreshToken: "refresh",
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Login(context.Background(), api.CredentialsRequest{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "refresh", resp.RefreshToken)
}

// TestClient_Login_Unauthorized проверяет код 401
func TestClient_Login_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Unauthorized", Message: "Unauthorized: Invalid password"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Login(context.Background(), api.CredentialsRequest{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, IsStatus(err, http.StatusForbidden))
	assert.Contains(t, err.Error(), "Unauthorized: Invalid password")
}

// TestClient_RefreshAndLogout проверяет тело запроса с refresh token
func TestClient_RefreshAndLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-1", req.RefreshToken)

		switch r.URL.Path {
		case "/v2/refresh":
			_ = json.NewEncoder(w).Encode(api.RefreshResponse{AccessToken: "access-2"})
		case "/v2/logout":
			_ = json.NewEncoder(w).Encode(api.MessageResponse{Message: "Logged out successfully"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	refreshed, err := client.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", refreshed.AccessToken)

	out, err := client.Logout(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", out.Message)
}

// TestClient_Vehicles проверяет bearer заголовок и тело add-vehicle
func TestClient_Vehicles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/v2/userdata":
			assert.Equal(t, http.MethodGet, r.Method)
			_ = json.NewEncoder(w).Encode(api.UserDataResponse{
				Username: "dog76@aol.com",
				Vehicles: []string{"2024 BMW X3 330i xDrive"},
			})
		case "/v2/add-vehicle":
			assert.Equal(t, http.MethodPost, r.Method)
			var req api.AddVehicleRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.Vehicle)
			_ = json.NewEncoder(w).Encode(api.AddVehicleResponse{
				Message:  "Vehicle added successfully",
				Vehicles: []models.Vehicle{req.Vehicle.Vehicle()},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	data, err := client.UserData(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, "dog76@aol.com", data.Username)
	assert.Equal(t, []string{"2024 BMW X3 330i xDrive"}, data.Vehicles)

	in := &models.VehicleInput{Year: 2025, Make: "AUDI", Model: "A4", Trim: &models.Trim{Name: "40 Premium Plus", GID: 12245}}
	added, err := client.AddVehicle(context.Background(), "access-1", in)
	require.NoError(t, err)
	require.Len(t, added.Vehicles, 1)
	assert.Equal(t, "2025 AUDI A4 40 Premium Plus", added.Vehicles[0].String())
}

// TestClient_Legacy проверяет заголовок x-api-auth
func TestClient_Legacy(t *testing.T) {
	want := base64.StdEncoding.EncodeToString([]byte("dog76@aol.com:password123"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, want, r.Header.Get(api.HeaderLegacyAuth))

		switch r.URL.Path {
		case "/v1/auth":
			_ = json.NewEncoder(w).Encode(api.LegacyAuthResponse{Role: models.RoleUser, Username: "dog76@aol.com"})
		case "/v1/userdata":
			_ = json.NewEncoder(w).Encode(api.VehicleListResponse{Vehicles: []string{"2024 BMW X3 330i xDrive"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	who, err := client.LegacyAuth(context.Background(), "dog76@aol.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, who.Role)

	list, err := client.LegacyUserData(context.Background(), "dog76@aol.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024 BMW X3 330i xDrive"}, list.Vehicles)
}

// TestClient_Health проверяет health check
func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", Version: "1.0.0"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

// TestClient_ContextCanceled проверяет отмену запроса
func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Health(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestClient_InvalidJSON проверяет ответ, который не декодируется
func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

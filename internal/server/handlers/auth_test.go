package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/auth"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

func doJSON(t *testing.T, h http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		mock           *mockSessions
		name           string
		body           string
		expectedMsg    string
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"username":"new@example.com","password":"pw"}`,
			mock:           &mockSessions{},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User registered successfully",
		},
		{
			name:           "user exists maps to 400",
			body:           `{"username":"dog76@aol.com","password":"pw"}`,
			mock:           &mockSessions{registerErr: &auth.Error{Kind: auth.KindConflict, Message: "User already exists"}},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "User already exists",
		},
		{
			name:           "hash failure",
			body:           `{"username":"new@example.com","password":"pw"}`,
			mock:           &mockSessions{registerErr: &auth.Error{Kind: auth.KindInternal, Message: "Internal server error"}},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
		},
		{
			name:           "invalid json",
			body:           `{"username":`,
			mock:           &mockSessions{},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(setupTestLogger(), tt.mock)
			w := doJSON(t, handler.Register, http.MethodPost, "/v2/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.expectedStatus == http.StatusCreated {
				var resp api.MessageResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedMsg, resp.Message)
				assert.Equal(t, "new@example.com", tt.mock.gotUsername)
				assert.Equal(t, "pw", tt.mock.gotPassword)
				return
			}
			assert.Equal(t, tt.expectedMsg, decodeError(t, w).Message)
		})
	}
}

func TestAuthHandler_RegisterEmptyBody(t *testing.T) {
	mock := &mockSessions{registerErr: &auth.Error{Kind: auth.KindBadRequest, Message: "Missing required fields"}}
	handler := NewAuthHandler(setupTestLogger(), mock)

	w := doJSON(t, handler.Register, http.MethodPost, "/v2/register", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", decodeError(t, w).Message)
	assert.Empty(t, mock.gotUsername)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := &mockSessions{pair: &auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}}
		handler := NewAuthHandler(setupTestLogger(), mock)

		w := doJSON(t, handler.Login, http.MethodPost, "/v2/auth", `{"username":"dog76@aol.com","password":"password123"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Authentication successful","accessToken":"access","refreshToken":"refresh"}`, w.Body.String())
	})

	t.Run("invalid password", func(t *testing.T) {
		mock := &mockSessions{loginErr: &auth.Error{Kind: auth.KindUnauthorized, Message: "Unauthorized: Invalid password"}}
		handler := NewAuthHandler(setupTestLogger(), mock)

		w := doJSON(t, handler.Login, http.MethodPost, "/v2/auth", `{"username":"dog76@aol.com","password":"x"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized: Invalid password", decodeError(t, w).Message)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	tests := []struct {
		mock           *mockSessions
		name           string
		body           string
		expectedStatus int
	}{
		{name: "success", body: `{"refreshToken":"r"}`, mock: &mockSessions{access: "new-access"}, expectedStatus: http.StatusOK},
		{name: "missing", body: `{}`, mock: &mockSessions{refreshErr: &auth.Error{Kind: auth.KindUnauthorized, Message: "No refresh token provided"}}, expectedStatus: http.StatusUnauthorized},
		{name: "unknown", body: `{"refreshToken":"x"}`, mock: &mockSessions{refreshErr: &auth.Error{Kind: auth.KindForbidden, Message: "Invalid or expired refresh token"}}, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(setupTestLogger(), tt.mock)
			w := doJSON(t, handler.Refresh, http.MethodPost, "/v2/refresh", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"accessToken":"new-access"}`, w.Body.String())
				assert.Equal(t, "r", tt.mock.gotToken)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := &mockSessions{}
		handler := NewAuthHandler(setupTestLogger(), mock)

		w := doJSON(t, handler.Logout, http.MethodPost, "/v2/logout", `{"refreshToken":"r"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
		assert.Equal(t, "r", mock.gotToken)
	})

	t.Run("not found", func(t *testing.T) {
		mock := &mockSessions{logoutErr: &auth.Error{Kind: auth.KindNotFound, Message: "Refresh token not found"}}
		handler := NewAuthHandler(setupTestLogger(), mock)

		w := doJSON(t, handler.Logout, http.MethodPost, "/v2/logout", `{"refreshToken":"r"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Refresh token not found", decodeError(t, w).Message)
	})
}

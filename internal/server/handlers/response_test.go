package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/auth"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind auth.Kind
		want int
	}{
		{kind: auth.KindBadRequest, want: http.StatusBadRequest},
		{kind: auth.KindConflict, want: http.StatusBadRequest},
		{kind: auth.KindUnauthorized, want: http.StatusUnauthorized},
		{kind: auth.KindForbidden, want: http.StatusForbidden},
		{kind: auth.KindNotFound, want: http.StatusNotFound},
		{kind: auth.KindInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForKind(tt.kind))
		})
	}
}

func TestSendAuthError_ForeignError(t *testing.T) {
	h := responder{logger: setupTestLogger()}
	w := httptest.NewRecorder()

	h.sendAuthError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Internal Server Error", resp.Error)
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestGetAccessToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetAccessToken(req.Context())
	assert.False(t, ok)

	token, ok := GetAccessToken(WithAccessToken(req.Context(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = GetAccessToken(WithAccessToken(req.Context(), ""))
	assert.False(t, ok)
}

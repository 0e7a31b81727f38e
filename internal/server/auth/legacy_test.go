package auth

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/crypto"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
)

func TestLegacyAuthenticator_Authenticate(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name     string
		header   string
		want     *Identity
		wantKind Kind
		wantErr  bool
	}{
		{
			name:   "seed user",
			header: basicHeader("dog76@aol.com:password123"),
			want:   &Identity{Username: "dog76@aol.com", Role: models.RoleUser},
		},
		{
			name:   "duplicate username first record",
			header: basicHeader("chris@google.com:mysecretpassword"),
			want:   &Identity{Username: "chris@google.com", Role: models.RoleAdmin},
		},
		{
			name:   "duplicate username second record",
			header: basicHeader("chris@google.com:Womp!889"),
			want:   &Identity{Username: "chris@google.com", Role: models.RoleUser},
		},
		{
			name:   "password equal to another username",
			header: basicHeader("rat76@aol.com:chris@google.com"),
			want:   &Identity{Username: "rat76@aol.com", Role: models.RoleAffiliate},
		},
		{
			name:   "unpadded base64",
			header: base64.RawStdEncoding.EncodeToString([]byte("dog76@aol.com:password123")),
			want:   &Identity{Username: "dog76@aol.com", Role: models.RoleUser},
		},
		{
			name:   "quoted header",
			header: `"` + basicHeader("dog76@aol.com:password123") + `"`,
			want:   &Identity{Username: "dog76@aol.com", Role: models.RoleUser},
		},
		{name: "empty header", header: "", wantErr: true, wantKind: KindBadRequest},
		{name: "wrong password", header: basicHeader("dog76@aol.com:password124"), wantErr: true, wantKind: KindUnauthorized},
		{name: "unknown user", header: basicHeader("nobody@aol.com:password123"), wantErr: true, wantKind: KindUnauthorized},
		{name: "no separator", header: basicHeader("dog76@aol.com"), wantErr: true, wantKind: KindUnauthorized},
		{name: "not base64", header: "%%%not-base64%%%", wantErr: true, wantKind: KindUnauthorized},
		{name: "empty username", header: basicHeader(":password123"), wantErr: true, wantKind: KindUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.legacy.Authenticate(context.Background(), tt.header)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLegacyAuthenticator_EmptyHeaderMessage(t *testing.T) {
	e := newEnv(t)

	_, err := e.legacy.Authenticate(context.Background(), "")
	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "No x-api-auth header provided", authErr.Message)
}

func TestLegacyAuthenticator_PasswordWithColon(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.service.Register(ctx, "colon@example.com", "pa:ss:word"))

	id, err := e.legacy.Authenticate(ctx, basicHeader("colon@example.com:pa:ss:word"))
	require.NoError(t, err)
	assert.Equal(t, "colon@example.com", id.Username)

	// зарегистрированный пользователь с bcrypt паролем
	_, err = e.legacy.Authenticate(ctx, basicHeader("colon@example.com:pa"))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLegacyAuthenticator_UserData(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	vehicles, err := e.legacy.UserData(ctx, basicHeader("dog76@aol.com:password123"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024 BMW X3 330i xDrive", "2025 AUDI A4 40 Premium Plus"}, vehicles)

	vehicles, err = e.legacy.UserData(ctx, basicHeader("chris@google.com:Womp!889"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024 JEEP WRANGLER UNLIMITED 4XE", "2025 MERCEDES-BENZ GLS 4D WAGON GLS450 4WD"}, vehicles)

	// у Admin нет поля vehicles: пустой список, не ошибка
	vehicles, err = e.legacy.UserData(ctx, basicHeader("chris@google.com:mysecretpassword"))
	require.NoError(t, err)
	assert.NotNil(t, vehicles)
	assert.Empty(t, vehicles)

	_, err = e.legacy.UserData(ctx, basicHeader("dog76@aol.com:nope"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = e.legacy.UserData(ctx, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestLegacyAuthenticator_Faults(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	a := NewLegacyAuthenticator(logger, failingStorage{}, crypto.NewPasswordHasher(crypto.PasswordModeTesting, 1))
	_, err := a.Authenticate(ctx, basicHeader("dog76@aol.com:password123"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, errBoom)

	e := newEnv(t)
	a = NewLegacyAuthenticator(logger, e.store, failingHasher{})
	_, err = a.Authenticate(ctx, basicHeader("dog76@aol.com:password123"))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLegacyAuthenticator_Records(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _ = e.legacy.Authenticate(ctx, basicHeader("dog76@aol.com:password123"))
	_, _ = e.legacy.Authenticate(ctx, basicHeader("dog76@aol.com:bad"))

	assert.Equal(t, []string{"legacy:ok", "legacy:unauthorized"}, e.recorder.Events())
}

func TestDecodeCredentials(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		username string
		password string
		ok       bool
	}{
		{name: "plain", header: basicHeader("a:b"), username: "a", password: "b", ok: true},
		{name: "first colon splits", header: basicHeader("a:b:c"), username: "a", password: "b:c", ok: true},
		{name: "empty password", header: basicHeader("a:"), username: "a", password: "", ok: true},
		{name: "surrounding spaces", header: "  " + basicHeader("a:b") + " ", username: "a", password: "b", ok: true},
		{name: "blank", header: "   ", ok: false},
		{name: "no colon", header: basicHeader("ab"), ok: false},
		{name: "garbage", header: "***", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, p, ok := decodeCredentials(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.username, u)
			assert.Equal(t, tt.password, p)
		})
	}
}

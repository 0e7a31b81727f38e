package auth

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
)

// LegacyAuthenticator проверяет пару username:password из заголовка x-api-auth
// при каждом запросе. Токены не выпускаются.
type LegacyAuthenticator struct {
	logger   *slog.Logger
	users    storage.UserStorage
	hasher   PasswordHasher
	recorder Recorder
}

// NewLegacyAuthenticator создает legacy аутентификатор
func NewLegacyAuthenticator(logger *slog.Logger, users storage.UserStorage, hasher PasswordHasher, opts ...Option) *LegacyAuthenticator {
	o := buildOptions(opts)
	return &LegacyAuthenticator{
		logger:   orDefault(logger),
		users:    users,
		hasher:   hasher,
		recorder: o.recorder,
	}
}

// Authenticate возвращает роль и имя пользователя, чьи учетные данные переданы в заголовке
func (a *LegacyAuthenticator) Authenticate(ctx context.Context, header string) (*Identity, error) {
	user, err := a.match(ctx, header)
	a.recorder.ObserveAuth(FlowLegacy, outcome(err))
	if err != nil {
		return nil, err
	}

	return &Identity{Username: user.Username, Role: user.Role}, nil
}

// UserData возвращает список машин пользователя в формате "<year> <make> <model> <trim>".
// Пользователь без поля vehicles получает пустой список.
func (a *LegacyAuthenticator) UserData(ctx context.Context, header string) ([]string, error) {
	user, err := a.match(ctx, header)
	a.recorder.ObserveAuth(FlowLegacy, outcome(err))
	if err != nil {
		return nil, err
	}

	return user.VehicleList(), nil
}

// match находит первую запись, у которой совпадают и username, и пароль
func (a *LegacyAuthenticator) match(ctx context.Context, header string) (*models.User, error) {
	if header == "" {
		return nil, newError(KindBadRequest, "No x-api-auth header provided", nil)
	}

	username, password, ok := decodeCredentials(header)
	if !ok {
		a.logger.WarnContext(ctx, "malformed x-api-auth header")
		return nil, newError(KindUnauthorized, "Unauthorized", nil)
	}

	candidates, err := a.users.ListUsersByUsername(ctx, username)
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to look up user", slog.Any("error", err))
		return nil, internal(err)
	}

	for _, u := range candidates {
		ok, err := a.hasher.Verify(ctx, password, u.Password)
		if err != nil {
			a.logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
			return nil, internal(err)
		}
		if ok {
			return u, nil
		}
	}

	a.logger.WarnContext(ctx, "legacy credentials rejected", slog.String("username", username))
	return nil, newError(KindUnauthorized, "Unauthorized", nil)
}

// decodeCredentials разбирает base64("username:password").
// Разделитель - первое двоеточие, так что пароль может содержать ':'.
func decodeCredentials(header string) (username, password string, ok bool) {
	raw := strings.Trim(strings.TrimSpace(header), `"'`)
	if raw == "" {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(raw)
		if err != nil {
			return "", "", false
		}
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	if !ok || username == "" {
		return "", "", false
	}
	return username, password, true
}

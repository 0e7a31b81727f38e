package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/jwt"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/validation"
)

// TokenPair is issued at login
type TokenPair struct {
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	AccessToken      string
	RefreshToken     string
}

// Service реализует v2 сценарии: регистрация, вход, обновление access токена и выход
type Service struct {
	logger   *slog.Logger
	users    storage.UserStorage
	registry storage.TokenStorage
	hasher   PasswordHasher
	tokens   TokenService
	recorder Recorder
}

// NewService создает сервис v2 сессий
func NewService(
	logger *slog.Logger,
	users storage.UserStorage,
	registry storage.TokenStorage,
	hasher PasswordHasher,
	tokens TokenService,
	opts ...Option,
) *Service {
	o := buildOptions(opts)
	return &Service{
		logger:   orDefault(logger),
		users:    users,
		registry: registry,
		hasher:   hasher,
		tokens:   tokens,
		recorder: o.recorder,
	}
}

// Register создает пользователя с ролью User и пустым списком машин
func (s *Service) Register(ctx context.Context, username, password string) (err error) {
	defer func() { s.recorder.ObserveAuth(FlowRegister, outcome(err)) }()

	if username == "" || password == "" {
		return newError(KindBadRequest, "Missing required fields", nil)
	}
	if err := validation.ValidateUsername(username); err != nil {
		s.logger.WarnContext(ctx, "invalid username", slog.Any("error", err))
		return newError(KindBadRequest, "Invalid username: "+err.Error(), err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return newError(KindBadRequest, "Invalid password: "+err.Error(), err)
	}

	// дешевая проверка до хеширования; атомарность обеспечивает CreateUser
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		s.logger.WarnContext(ctx, "user already exists", slog.String("username", username))
		return newError(KindConflict, "User already exists", storage.ErrUserAlreadyExists)
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		s.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return internal(err)
	}

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		return internal(err)
	}

	user := &models.User{
		Username:  username,
		Password:  hashed,
		Role:      models.RoleUser,
		Vehicles:  []models.Vehicle{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			s.logger.WarnContext(ctx, "user already exists", slog.String("username", username))
			return newError(KindConflict, "User already exists", err)
		}
		s.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		return internal(err)
	}

	s.logger.InfoContext(ctx, "user registered successfully", slog.String("username", username))
	return nil
}

// Login проверяет пароль первой записи с данным username и выпускает пару токенов.
// Refresh токен сохраняется в реестре.
func (s *Service) Login(ctx context.Context, username, password string) (pair *TokenPair, err error) {
	defer func() { s.recorder.ObserveAuth(FlowLogin, outcome(err)) }()

	if username == "" || password == "" {
		return nil, newError(KindBadRequest, "Missing username or password", nil)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "login for unknown user", slog.String("username", username))
			return nil, newError(KindUnauthorized, "Unauthorized: User not found", err)
		}
		s.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return nil, internal(err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
		return nil, internal(err)
	}
	if !ok {
		s.logger.WarnContext(ctx, "invalid password", slog.String("username", username))
		return nil, newError(KindUnauthorized, "Unauthorized: Invalid password", nil)
	}

	access, accessExp, err := s.tokens.IssueAccess(user.Username, user.Role, jwt.AccessTTLLogin)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		return nil, internal(err)
	}

	refresh, refreshExp, err := s.tokens.IssueRefresh(user.Username, user.Role, jwt.RefreshTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue refresh token", slog.Any("error", err))
		return nil, internal(err)
	}

	if err := s.registry.SaveRefreshToken(ctx, refresh); err != nil {
		s.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		return nil, internal(err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("username", user.Username))

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh выпускает новый access токен со сроком жизни AccessTTLRefresh.
// Сам refresh токен не меняется и остается в реестре.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (access string, err error) {
	defer func() { s.recorder.ObserveAuth(FlowRefresh, outcome(err)) }()

	if refreshToken == "" {
		return "", newError(KindUnauthorized, "No refresh token provided", nil)
	}

	known, err := s.registry.HasRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check refresh token", slog.Any("error", err))
		return "", internal(err)
	}
	if !known {
		s.logger.WarnContext(ctx, "unknown refresh token")
		return "", newError(KindForbidden, "Invalid or expired refresh token", nil)
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh token rejected", slog.String("reason", jwt.Kind(err)))
		return "", newError(KindForbidden, "Invalid refresh token", err)
	}

	access, _, err = s.tokens.IssueAccess(claims.Username, claims.Role, jwt.AccessTTLRefresh)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		return "", internal(err)
	}

	return access, nil
}

// Logout удаляет ровно один refresh токен из реестра
func (s *Service) Logout(ctx context.Context, refreshToken string) (err error) {
	defer func() { s.recorder.ObserveAuth(FlowLogout, outcome(err)) }()

	if refreshToken == "" {
		return newError(KindBadRequest, "No refresh token provided", nil)
	}

	if err := s.registry.DeleteRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return newError(KindNotFound, "Refresh token not found", err)
		}
		s.logger.ErrorContext(ctx, "failed to delete refresh token", slog.Any("error", err))
		return internal(err)
	}

	s.logger.InfoContext(ctx, "refresh token revoked")
	return nil
}

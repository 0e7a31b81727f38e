// Package server собирает HTTP сервер: хранилище, сервисы аутентификации, обработчики и middleware.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/crypto"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/auth"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/config"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/handlers"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/jwt"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/metrics"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/middleware"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage/memory"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage/sqlite"
)

// App держит собранный HTTP обработчик и ресурсы, которые надо закрыть при остановке
type App struct {
	logger  *slog.Logger
	store   storage.Storage
	metrics *metrics.Metrics
	handler http.Handler
}

// Option настраивает App
type Option func(*options)

type options struct {
	jwtOpts      []jwt.Option
	passwordMode crypto.PasswordMode
}

// WithPasswordMode задает стоимость bcrypt (в тестах PasswordModeTesting)
func WithPasswordMode(mode crypto.PasswordMode) Option {
	return func(o *options) {
		o.passwordMode = mode
	}
}

// WithTokenOptions пробрасывает опции в jwt.Service
func WithTokenOptions(opts ...jwt.Option) Option {
	return func(o *options) {
		o.jwtOpts = append(o.jwtOpts, opts...)
	}
}

// New собирает приложение по конфигурации и заполняет каталог seed пользователями.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	o := options{passwordMode: crypto.PasswordModeProduction}
	for _, opt := range opts {
		opt(&o)
	}

	tokens, err := jwt.NewService(cfg.SecretKey, cfg.RefreshSecretKey, o.jwtOpts...)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}

	store, err := openStorage(ctx, cfg.StorageBackend)
	if err != nil {
		return nil, err
	}

	if err := seed(ctx, logger, store); err != nil {
		_ = store.Close()
		return nil, err
	}

	m := metrics.New()
	hasher := crypto.NewPasswordHasher(o.passwordMode, cfg.HashWorkers)

	legacy := auth.NewLegacyAuthenticator(logger, store, hasher, auth.WithRecorder(m))
	gate := auth.NewGate(logger, store, tokens, auth.WithRecorder(m))
	sessions := auth.NewService(logger, store, store, hasher, tokens, auth.WithRecorder(m))

	a := &App{
		logger:  logger,
		store:   store,
		metrics: m,
	}

	mux := newMux(logger, version, m,
		handlers.NewLegacyHandler(logger, legacy),
		handlers.NewAuthHandler(logger, sessions),
		handlers.NewVehicleHandler(logger, gate),
	)

	var h http.Handler = mux
	h = middleware.CORSMiddleware(logger, cfg.CORSAllowedOrigins)(h)
	h = m.Instrument(h)
	h = middleware.LoggingWithSkip(logger, []string{"/health", "/metrics"})(h)
	h = middleware.RecoveryMiddleware(logger)(h)
	a.handler = h

	logger.Info("Application initialized",
		"storage", cfg.StorageBackend,
		"version", version,
	)
	return a, nil
}

// Handler возвращает корневой обработчик для http.Server
func (a *App) Handler() http.Handler {
	return a.handler
}

// Metrics возвращает метрики приложения
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Close освобождает хранилище
func (a *App) Close() error {
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

func newMux(
	logger *slog.Logger,
	version string,
	m *metrics.Metrics,
	legacy *handlers.LegacyHandler,
	sessions *handlers.AuthHandler,
	vehicles *handlers.VehicleHandler,
) *http.ServeMux {
	health := handlers.NewHealthHandler(logger, version)
	bearer := middleware.AuthMiddleware(logger)

	mux := http.NewServeMux()

	// v1: пара логин/пароль в каждом запросе
	mux.HandleFunc("GET /v1/auth", legacy.Auth)
	mux.HandleFunc("GET /v1/userdata", legacy.UserData)

	// v2: токены
	mux.HandleFunc("POST /v2/register", sessions.Register)
	mux.HandleFunc("POST /v2/auth", sessions.Login)
	mux.HandleFunc("POST /v2/refresh", sessions.Refresh)
	mux.HandleFunc("POST /v2/logout", sessions.Logout)
	mux.Handle("POST /v2/add-vehicle", bearer(http.HandlerFunc(vehicles.AddVehicle)))
	mux.Handle("GET /v2/userdata", bearer(http.HandlerFunc(vehicles.UserData)))

	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", m.Handler())

	// остальные маршруты и методы
	mux.HandleFunc("/", health.NotFound)

	return mux
}

func openStorage(ctx context.Context, backend string) (storage.Storage, error) {
	switch backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQLite:
		s, err := sqlite.New(ctx, sqlite.MemoryDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, backend)
	}
}

func seed(ctx context.Context, logger *slog.Logger, store storage.UserStorage) error {
	users := storage.SeedUsers()

	// известная аномалия исходных данных: не дедуплицируем, только предупреждаем
	for _, name := range storage.DuplicateUsernames(users) {
		logger.Warn("Duplicate username in seed directory, lookups use the first record",
			"username", name,
		)
	}

	if err := store.SeedUsers(ctx, users); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}

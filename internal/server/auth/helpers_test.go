package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/crypto"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/jwt"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage/memory"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recorder collects flow outcomes
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) ObserveAuth(flow, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, flow+":"+outcome)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// env wires the real components over seeded memory storage
type env struct {
	store    *memory.Storage
	tokens   *jwt.Service
	clock    *fakeClock
	recorder *recorder
	legacy   *LegacyAuthenticator
	gate     *Gate
	service  *Service
}

func newEnv(t *testing.T) *env {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	require.NoError(t, store.SeedUsers(context.Background(), storage.SeedUsers()))

	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	tokens, err := jwt.NewService("access-secret", "refresh-secret", jwt.WithClock(clock.Now))
	require.NoError(t, err)

	hasher := crypto.NewPasswordHasher(crypto.PasswordModeTesting, 4)
	rec := &recorder{}

	return &env{
		store:    store,
		tokens:   tokens,
		clock:    clock,
		recorder: rec,
		legacy:   NewLegacyAuthenticator(logger, store, hasher, WithRecorder(rec)),
		gate:     NewGate(logger, store, tokens, WithRecorder(rec)),
		service:  NewService(logger, store, store, hasher, tokens, WithRecorder(rec)),
	}
}

func basicHeader(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// failingStorage returns errBoom from every method
type failingStorage struct{}

func (failingStorage) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, errBoom
}

func (failingStorage) ListUsersByUsername(context.Context, string) ([]*models.User, error) {
	return nil, errBoom
}

func (failingStorage) CreateUser(context.Context, *models.User) error { return errBoom }

func (failingStorage) AppendVehicle(context.Context, string, models.Vehicle) ([]models.Vehicle, error) {
	return nil, errBoom
}

func (failingStorage) SeedUsers(context.Context, []*models.User) error { return errBoom }

func (failingStorage) SaveRefreshToken(context.Context, string) error { return errBoom }

func (failingStorage) HasRefreshToken(context.Context, string) (bool, error) { return false, errBoom }

func (failingStorage) DeleteRefreshToken(context.Context, string) error { return errBoom }

func (failingStorage) Close() error { return nil }

// failingHasher fails every operation
type failingHasher struct{}

func (failingHasher) Hash(context.Context, string) (models.Password, error) {
	return models.Password{}, errBoom
}

func (failingHasher) Verify(context.Context, string, models.Password) (bool, error) {
	return false, errBoom
}

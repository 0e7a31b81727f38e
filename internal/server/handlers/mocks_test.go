package handlers

import (
	"context"
	"log/slog"
	"os"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/auth"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockLegacy is a mock implementation of LegacyAuthenticator for testing
type mockLegacy struct {
	identity   *auth.Identity
	err        error
	vehicles   []string
	lastHeader string
}

func (m *mockLegacy) Authenticate(_ context.Context, header string) (*auth.Identity, error) {
	m.lastHeader = header
	if m.err != nil {
		return nil, m.err
	}
	return m.identity, nil
}

func (m *mockLegacy) UserData(_ context.Context, header string) ([]string, error) {
	m.lastHeader = header
	if m.err != nil {
		return nil, m.err
	}
	return m.vehicles, nil
}

// mockSessions is a mock implementation of SessionService for testing
type mockSessions struct {
	pair        *auth.TokenPair
	registerErr error
	loginErr    error
	refreshErr  error
	logoutErr   error
	access      string
	gotUsername string
	gotPassword string
	gotToken    string
}

func (m *mockSessions) Register(_ context.Context, username, password string) error {
	m.gotUsername, m.gotPassword = username, password
	return m.registerErr
}

func (m *mockSessions) Login(_ context.Context, username, password string) (*auth.TokenPair, error) {
	m.gotUsername, m.gotPassword = username, password
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.pair, nil
}

func (m *mockSessions) Refresh(_ context.Context, refreshToken string) (string, error) {
	m.gotToken = refreshToken
	if m.refreshErr != nil {
		return "", m.refreshErr
	}
	return m.access, nil
}

func (m *mockSessions) Logout(_ context.Context, refreshToken string) error {
	m.gotToken = refreshToken
	return m.logoutErr
}

// mockGate is a mock implementation of VehicleGate for testing
type mockGate struct {
	err       error
	gotInput  *models.VehicleInput
	username  string
	gotToken  string
	formatted []string
	vehicles  []models.Vehicle
}

func (m *mockGate) ListVehicles(_ context.Context, token string) (string, []string, error) {
	m.gotToken = token
	if m.err != nil {
		return "", nil, m.err
	}
	return m.username, m.formatted, nil
}

func (m *mockGate) AddVehicle(_ context.Context, token string, in *models.VehicleInput) ([]models.Vehicle, error) {
	m.gotToken = token
	m.gotInput = in
	if m.err != nil {
		return nil, m.err
	}
	return m.vehicles, nil
}

// Package cli реализует команды консольного клиента Auto Ninjas.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/iocli"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/storage"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/pkg/api"
)

// PasswordEnv переменная окружения с паролем пользователя
const PasswordEnv = "AUTONINJAS_PASSWORD"

// SessionService v2 сессия клиента
type SessionService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)
	Refresh(ctx context.Context) (*storage.AuthData, error)
	Vehicles(ctx context.Context) (*api.UserDataResponse, error)
	AddVehicle(ctx context.Context, vehicle *models.VehicleInput) (*api.AddVehicleResponse, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*storage.AuthData, error)
}

// ServerClient запросы без сессии: legacy схема и health check
type ServerClient interface {
	LegacyAuth(ctx context.Context, username, password string) (*api.LegacyAuthResponse, error)
	LegacyUserData(ctx context.Context, username, password string) (*api.VehicleListResponse, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// Passwords источники пароля
type Passwords struct {
	FromFile string
	FromArgs string
}

// Options глобальные параметры команд
type Options struct {
	Username  string
	ServerURL string
	Passwords Passwords
}

// Cli выполняет команды клиента
type Cli struct {
	io      iocli.IO
	session SessionService
	server  ServerClient
	opts    Options
}

// New создает CLI
func New(console iocli.IO, session SessionService, server ServerClient, opts Options) *Cli {
	return &Cli{
		io:      console,
		session: session,
		server:  server,
		opts:    opts,
	}
}

// readCredentials возвращает username из опций или спрашивает его, затем пароль
func (c *Cli) readCredentials() (string, string, error) {
	username := c.opts.Username
	if username == "" {
		var err error
		if username, err = c.io.ReadInput("Username: "); err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := c.getPassword()
	if err != nil {
		return "", "", fmt.Errorf("failed to get password: %w", err)
	}
	return username, password, nil
}

// getPassword retrieves the password from various sources with priority:
// 1. Environment variable AUTONINJAS_PASSWORD
// 2. File from --password-file
// 3. Command-line parameter --password
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword() (string, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if c.opts.Passwords.FromFile != "" {
		content, err := os.ReadFile(c.opts.Passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline
		password := strings.TrimRight(string(content), "\r\n")
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: CLI parameter
	if c.opts.Passwords.FromArgs != "" {
		return c.opts.Passwords.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// PrintUsage печатает справку
func PrintUsage(out iocli.IO) {
	out.Println("Auto Ninjas Client")
	out.Println()
	out.Println("Usage:")
	out.Println("  autoninjas [OPTIONS] COMMAND [ARGS]")
	out.Println()
	out.Println("Options:")
	out.Println("  --version              Show version information")
	out.Println("  --server URL           Server URL (default: http://localhost:3000)")
	out.Println("  --db PATH              Path to local session database (default: autoninjas-client.db)")
	out.Println("  --username NAME        Username (prompted if empty)")
	out.Println("  --password PASSWORD    Password (not recommended, use env var or file)")
	out.Println("  --password-file PATH   Path to file containing the password")
	out.Println()
	out.Println("Password Priority (highest to lowest):")
	out.Println("  1. " + PasswordEnv + " environment variable")
	out.Println("  2. --password-file (file path)")
	out.Println("  3. --password (command line)")
	out.Println("  4. Interactive prompt (fallback)")
	out.Println()
	out.Println("Commands:")
	out.Println("  register                Register new user")
	out.Println("  login                   Login and save the session")
	out.Println("  refresh                 Get a new access token")
	out.Println("  vehicles                List your vehicles")
	out.Println("  add-vehicle [FLAGS]     Add a vehicle (--year --make --model --trim --gid)")
	out.Println("  logout                  Revoke the session")
	out.Println("  status                  Show session and server status")
	out.Println("  legacy-auth             Check credentials with the v1 scheme")
	out.Println("  legacy-vehicles         List vehicles with the v1 scheme")
	out.Println()
	out.Println("Examples:")
	out.Println("  autoninjas --username dog76@aol.com login")
	out.Println("  autoninjas add-vehicle --year 2025 --make AUDI --model A4 --trim '40 Premium Plus' --gid 12245")
	out.Println("  autoninjas --server https://example.com vehicles")
}

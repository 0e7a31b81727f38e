// Package config собирает конфигурацию сервера из переменных окружения и флагов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Поддерживаемые хранилища.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var (
	ErrMissingSecret  = errors.New("signing secret is not set")
	ErrSameSecrets    = errors.New("access and refresh secrets must differ")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Config конфигурация сервера
type Config struct {
	SecretKey          string        `envconfig:"SECRET_KEY" required:"true"`
	RefreshSecretKey   string        `envconfig:"REFRESH_SECRET_KEY" required:"true"`
	StorageBackend     string        `envconfig:"STORAGE_BACKEND" default:"memory"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	Addr               string        `ignored:"true"` // адрес для ListenAndServe
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	Port               int           `envconfig:"PORT" default:"3000"`
	HashWorkers        int           `envconfig:"HASH_WORKERS" default:"0"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	ShowVersion        bool          `ignored:"true"`
}

// Load reads the environment and then applies command-line overrides from args
// (os.Args[1:] in main). With -version the environment is not consulted.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addr := fs.String("addr", "", "address to listen on, overrides PORT")
	backend := fs.String("storage", "", "storage backend: memory or sqlite")
	level := fs.String("log-level", "", "log level: debug, info, warn, error")
	version := fs.Bool("version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if *version {
		return &Config{ShowVersion: true}, nil
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.Addr = ":" + strconv.Itoa(cfg.Port)

	// флаги перекрывают окружение только если заданы явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "storage":
			cfg.StorageBackend = *backend
		case "log-level":
			cfg.LogLevel = *level
		}
	})

	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.SecretKey == "" || c.RefreshSecretKey == "" {
		return ErrMissingSecret
	}
	if c.SecretKey == c.RefreshSecretKey {
		return ErrSameSecrets
	}

	switch c.StorageBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StorageBackend)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel переводит LOG_LEVEL в slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

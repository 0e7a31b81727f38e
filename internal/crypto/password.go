package crypto

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
)

// PasswordMode controls bcrypt cost for password hashing.
type PasswordMode int

const (
	// PasswordModeProduction uses bcrypt.DefaultCost.
	PasswordModeProduction PasswordMode = iota
	// PasswordModeTesting uses bcrypt.MinCost. Tests only.
	PasswordModeTesting
)

// Cost returns the bcrypt cost for this mode.
func (m PasswordMode) Cost() int {
	if m == PasswordModeTesting {
		return bcrypt.MinCost
	}
	return bcrypt.DefaultCost
}

// ErrUnknownPasswordKind is returned for a stored password with an unexpected discriminator.
var ErrUnknownPasswordKind = errors.New("unknown password kind")

// PasswordHasher хеширует и проверяет пароли.
// bcrypt нагружает CPU, поэтому одновременно выполняется не более workers операций.
type PasswordHasher struct {
	pool *semaphore.Weighted
	cost int
}

// NewPasswordHasher создает хешер с пулом на workers слотов.
// workers <= 0 означает GOMAXPROCS.
func NewPasswordHasher(mode PasswordMode, workers int) *PasswordHasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{
		pool: semaphore.NewWeighted(int64(workers)),
		cost: mode.Cost(),
	}
}

// Hash возвращает bcrypt хеш пароля
func (h *PasswordHasher) Hash(ctx context.Context, password string) (models.Password, error) {
	if err := h.pool.Acquire(ctx, 1); err != nil {
		return models.Password{}, fmt.Errorf("acquire hash worker: %w", err)
	}
	defer h.pool.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return models.Password{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return models.BcryptPassword(string(hash)), nil
}

// Verify сравнивает кандидата с сохраненным паролем.
// Несовпадение возвращает false без ошибки, ошибка означает сбой проверки.
func (h *PasswordHasher) Verify(ctx context.Context, candidate string, stored models.Password) (bool, error) {
	switch stored.Kind {
	case models.PasswordPlaintext:
		return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored.Value)) == 1, nil

	case models.PasswordBcrypt:
		if err := h.pool.Acquire(ctx, 1); err != nil {
			return false, fmt.Errorf("acquire hash worker: %w", err)
		}
		defer h.pool.Release(1)

		err := bcrypt.CompareHashAndPassword([]byte(stored.Value), []byte(candidate))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password hash: %w", err)

	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownPasswordKind, stored.Kind)
	}
}

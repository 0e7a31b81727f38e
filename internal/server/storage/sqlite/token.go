package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
)

// SaveRefreshToken stores a refresh token
func (s *Storage) SaveRefreshToken(ctx context.Context, token string) error {
	query := `INSERT OR IGNORE INTO refresh_tokens (token, created_at) VALUES (?, ?)`

	if _, err := s.db.ExecContext(ctx, query, token, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	return nil
}

// HasRefreshToken reports whether the token is registered
func (s *Storage) HasRefreshToken(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token = ?)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return exists, nil
}

// DeleteRefreshToken deletes refresh token by token value
func (s *Storage) DeleteRefreshToken(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = ?`

	result, err := s.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTokenNotFound
	}

	return nil
}

package storage

import "context"

// TokenStorage defines the refresh token registry.
// It is a flat set of token strings: one user may hold many tokens.
type TokenStorage interface {
	// SaveRefreshToken stores a refresh token
	SaveRefreshToken(ctx context.Context, token string) error

	// HasRefreshToken reports whether the token is registered
	// Expired tokens stay registered until they are deleted
	HasRefreshToken(ctx context.Context, token string) (bool, error)

	// DeleteRefreshToken deletes refresh token by token value
	// Returns ErrTokenNotFound if token doesn't exist
	DeleteRefreshToken(ctx context.Context, token string) error
}

// Storage combines both stores behind a single backend.
type Storage interface {
	UserStorage
	TokenStorage
	Close() error
}

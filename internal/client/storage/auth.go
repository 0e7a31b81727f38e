package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for storing the CLI session on client
type AuthStorage interface {
	// SaveAuth stores the current session, replacing any previous one
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the current session.
	// Returns ErrAuthNotFound if no session exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the current session (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks that a session exists and its refresh token is not expired
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the v2 session of the CLI user.
// Expiry times are unix seconds read from the tokens' exp claim.
type AuthData struct {
	Username         string `json:"username"`
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	AccessExpiresAt  int64  `json:"access_expires_at"`
	RefreshExpiresAt int64  `json:"refresh_expires_at"`
}

// AccessExpired сообщает, что access token истек к моменту now
func (a *AuthData) AccessExpired(now time.Time) bool {
	return a.AccessExpiresAt != 0 && !now.Before(time.Unix(a.AccessExpiresAt, 0))
}

// RefreshExpired сообщает, что refresh token истек к моменту now
func (a *AuthData) RefreshExpired(now time.Time) bool {
	return a.RefreshExpiresAt != 0 && !now.Before(time.Unix(a.RefreshExpiresAt, 0))
}

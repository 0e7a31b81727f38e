// Package memory implements the storage interfaces on process memory.
package memory

import (
	"context"
	"sync"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
)

// Storage keeps users and refresh tokens for the lifetime of the process.
// The directory and the registry are guarded by independent locks.
type Storage struct {
	tokens   map[string]struct{}
	users    []*models.User
	usersMu  sync.RWMutex
	tokensMu sync.RWMutex
}

var _ storage.Storage = (*Storage)(nil)

// New creates an empty storage
func New() *Storage {
	return &Storage{
		tokens: make(map[string]struct{}),
	}
}

// Close is a no-op; memory storage holds no external resources.
func (s *Storage) Close() error {
	return nil
}

// findLocked returns the first user with the given username. Caller holds usersMu.
func (s *Storage) findLocked(username string) *models.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// GetUserByUsername retrieves the first user with the given username
func (s *Storage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u := s.findLocked(username)
	if u == nil {
		return nil, storage.ErrUserNotFound
	}
	return u.Clone(), nil
}

// ListUsersByUsername retrieves every user with the given username
func (s *Storage) ListUsersByUsername(_ context.Context, username string) ([]*models.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	var list []*models.User
	for _, u := range s.users {
		if u.Username == username {
			list = append(list, u.Clone())
		}
	}
	return list, nil
}

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(_ context.Context, user *models.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if s.findLocked(user.Username) != nil {
		return storage.ErrUserAlreadyExists
	}
	s.users = append(s.users, user.Clone())
	return nil
}

// AppendVehicle adds a vehicle to the first user with the given username
func (s *Storage) AppendVehicle(_ context.Context, username string, vehicle models.Vehicle) ([]models.Vehicle, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	u := s.findLocked(username)
	if u == nil {
		return nil, storage.ErrUserNotFound
	}
	u.Vehicles = append(u.Vehicles, vehicle)

	list := make([]models.Vehicle, len(u.Vehicles))
	copy(list, u.Vehicles)
	return list, nil
}

// SeedUsers inserts users without any uniqueness check
func (s *Storage) SeedUsers(_ context.Context, users []*models.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	for _, u := range users {
		s.users = append(s.users, u.Clone())
	}
	return nil
}

// SaveRefreshToken stores a refresh token
func (s *Storage) SaveRefreshToken(_ context.Context, token string) error {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()

	s.tokens[token] = struct{}{}
	return nil
}

// HasRefreshToken reports whether the token is registered
func (s *Storage) HasRefreshToken(_ context.Context, token string) (bool, error) {
	s.tokensMu.RLock()
	defer s.tokensMu.RUnlock()

	_, ok := s.tokens[token]
	return ok, nil
}

// DeleteRefreshToken deletes refresh token by token value
func (s *Storage) DeleteRefreshToken(_ context.Context, token string) error {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()

	if _, ok := s.tokens[token]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return nil
}

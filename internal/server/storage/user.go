package storage

import (
	"context"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
)

// UserStorage defines the credential directory.
// Usernames are unique for registered users only: seed data may repeat a
// username, in which case lookups resolve to the first record in directory order.
type UserStorage interface {
	// GetUserByUsername retrieves the first user with the given username
	// Returns ErrUserNotFound if user doesn't exist
	// The returned value is a copy and may be modified by the caller
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ListUsersByUsername retrieves every user with the given username in directory order
	// Returns empty slice if no users found
	ListUsersByUsername(ctx context.Context, username string) ([]*models.User, error)

	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if any record with this username exists
	CreateUser(ctx context.Context, user *models.User) error

	// AppendVehicle adds a vehicle to the first user with the given username
	// and returns the updated vehicle list
	// Returns ErrUserNotFound if user doesn't exist
	AppendVehicle(ctx context.Context, username string, vehicle models.Vehicle) ([]models.Vehicle, error)

	// SeedUsers inserts users without any uniqueness check
	SeedUsers(ctx context.Context, users []*models.User) error
}

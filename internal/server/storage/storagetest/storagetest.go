// Package storagetest holds behaviour tests shared by every storage backend.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
)

// Factory returns an empty backend. Cleanup is registered by the factory itself.
type Factory func(t *testing.T) storage.Storage

// Run executes the full suite against backends produced by newStorage.
func Run(t *testing.T, newStorage Factory) {
	t.Run("UserStorage", func(t *testing.T) { RunUserStorage(t, newStorage) })
	t.Run("TokenStorage", func(t *testing.T) { RunTokenStorage(t, newStorage) })
}

func registered(username string) *models.User {
	return &models.User{
		Username:  username,
		Password:  models.BcryptPassword("$2a$04$hash"),
		Role:      models.RoleUser,
		Vehicles:  []models.Vehicle{},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

var bmw = models.Vehicle{Year: 2024, Make: "BMW", Model: "X3", Trim: models.Trim{Name: "330i xDrive", GID: 13332}}

// RunUserStorage tests the credential directory contract.
func RunUserStorage(t *testing.T, newStorage Factory) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.CreateUser(ctx, registered("alice")))

		u, err := s.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, models.RoleUser, u.Role)
		assert.Equal(t, models.BcryptPassword("$2a$04$hash"), u.Password)
		assert.NotNil(t, u.Vehicles)
		assert.Empty(t, u.Vehicles)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStorage(t)
		_, err := s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)

		list, err := s.ListUsersByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("duplicate create", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.CreateUser(ctx, registered("alice")))
		err := s.CreateUser(ctx, registered("alice"))
		assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
	})

	t.Run("create collides with seed", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SeedUsers(ctx, storage.SeedUsers()))
		err := s.CreateUser(ctx, registered("dog76@aol.com"))
		assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
	})

	t.Run("seed keeps duplicates and first match wins", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SeedUsers(ctx, storage.SeedUsers()))

		u, err := s.GetUserByUsername(ctx, "chris@google.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, u.Role)
		assert.Nil(t, u.Vehicles)

		list, err := s.ListUsersByUsername(ctx, "chris@google.com")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, models.RoleAdmin, list[0].Role)
		assert.Equal(t, models.RoleUser, list[1].Role)
		assert.Equal(t, models.PlaintextPassword("Womp!889"), list[1].Password)
		assert.Len(t, list[1].Vehicles, 2)
	})

	t.Run("returned user is a copy", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SeedUsers(ctx, storage.SeedUsers()))

		u, err := s.GetUserByUsername(ctx, "dog76@aol.com")
		require.NoError(t, err)
		u.Vehicles[0].Make = "changed"
		u.Vehicles = append(u.Vehicles, bmw)

		again, err := s.GetUserByUsername(ctx, "dog76@aol.com")
		require.NoError(t, err)
		assert.Equal(t, "BMW", again.Vehicles[0].Make)
		assert.Len(t, again.Vehicles, 2)
	})

	t.Run("append vehicle", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.CreateUser(ctx, registered("alice")))

		list, err := s.AppendVehicle(ctx, "alice", bmw)
		require.NoError(t, err)
		assert.Equal(t, []models.Vehicle{bmw}, list)

		// дубликаты не отбрасываются
		list, err = s.AppendVehicle(ctx, "alice", bmw)
		require.NoError(t, err)
		assert.Equal(t, []models.Vehicle{bmw, bmw}, list)

		u, err := s.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, list, u.Vehicles)
	})

	t.Run("append vehicle to user without vehicles field", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SeedUsers(ctx, storage.SeedUsers()))

		list, err := s.AppendVehicle(ctx, "chris@google.com", bmw)
		require.NoError(t, err)
		assert.Equal(t, []models.Vehicle{bmw}, list)

		users, err := s.ListUsersByUsername(ctx, "chris@google.com")
		require.NoError(t, err)
		assert.Equal(t, []models.Vehicle{bmw}, users[0].Vehicles)
		assert.Len(t, users[1].Vehicles, 2)
	})

	t.Run("append vehicle missing user", func(t *testing.T) {
		s := newStorage(t)
		_, err := s.AppendVehicle(ctx, "nobody", bmw)
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("concurrent create of one username", func(t *testing.T) {
		s := newStorage(t)

		const n = 16
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.CreateUser(ctx, registered("race@example.com"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, storage.ErrUserAlreadyExists):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, n-1, conflicts)

		list, err := s.ListUsersByUsername(ctx, "race@example.com")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("concurrent appends are not lost", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.CreateUser(ctx, registered("alice")))

		const n = 20
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v := bmw
				v.Trim.GID = i + 1
				_, err := s.AppendVehicle(ctx, "alice", v)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		u, err := s.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, u.Vehicles, n)
	})
}

// RunTokenStorage tests the refresh token registry contract.
func RunTokenStorage(t *testing.T, newStorage Factory) {
	ctx := context.Background()

	t.Run("save has delete", func(t *testing.T) {
		s := newStorage(t)

		ok, err := s.HasRefreshToken(ctx, "token123")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.SaveRefreshToken(ctx, "token123"))
		ok, err = s.HasRefreshToken(ctx, "token123")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, s.DeleteRefreshToken(ctx, "token123"))
		ok, err = s.HasRefreshToken(ctx, "token123")
		require.NoError(t, err)
		assert.False(t, ok)

		err = s.DeleteRefreshToken(ctx, "token123")
		assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	})

	t.Run("save is idempotent", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SaveRefreshToken(ctx, "token123"))
		require.NoError(t, s.SaveRefreshToken(ctx, "token123"))
	})

	t.Run("delete revokes exactly one", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SaveRefreshToken(ctx, "device-a"))
		require.NoError(t, s.SaveRefreshToken(ctx, "device-b"))

		require.NoError(t, s.DeleteRefreshToken(ctx, "device-a"))

		ok, err := s.HasRefreshToken(ctx, "device-b")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("concurrent delete of one token", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SaveRefreshToken(ctx, "shared"))

		const n = 10
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			deleted  int
			notFound int
		)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.DeleteRefreshToken(ctx, "shared")
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					deleted++
				case errors.Is(err, storage.ErrTokenNotFound):
					notFound++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, deleted)
		assert.Equal(t, n-1, notFound)
	})

	t.Run("many tokens", func(t *testing.T) {
		s := newStorage(t)
		for i := range 5 {
			require.NoError(t, s.SaveRefreshToken(ctx, fmt.Sprintf("token-%d", i)))
		}
		for i := range 5 {
			ok, err := s.HasRefreshToken(ctx, fmt.Sprintf("token-%d", i))
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/server/storage"
)

// userRow is a user together with its primary key
type userRow struct {
	user *models.User
	id   int64
}

// GetUserByUsername retrieves the first user with the given username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := selectUsers(ctx, tx, username, 1)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return storage.ErrUserNotFound
		}
		user = rows[0].user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsersByUsername retrieves every user with the given username
func (s *Storage) ListUsersByUsername(ctx context.Context, username string) ([]*models.User, error) {
	var users []*models.User
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := selectUsers(ctx, tx, username, -1)
		if err != nil {
			return err
		}
		for _, r := range rows {
			users = append(users, r.user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE username = ?)`, user.Username,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return storage.ErrUserAlreadyExists
		}

		return insertUser(ctx, tx, user)
	})
}

// AppendVehicle adds a vehicle to the first user with the given username
func (s *Storage) AppendVehicle(ctx context.Context, username string, vehicle models.Vehicle) ([]models.Vehicle, error) {
	var list []models.Vehicle
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var userID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE username = ? ORDER BY id LIMIT 1`, username,
		).Scan(&userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		if err := insertVehicle(ctx, tx, userID, vehicle); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE users SET has_vehicles = 1 WHERE id = ?`, userID); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		list, err = selectVehicles(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

// SeedUsers inserts users without any uniqueness check
func (s *Storage) SeedUsers(ctx context.Context, users []*models.User) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range users {
			if err := insertUser(ctx, tx, u); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertUser(ctx context.Context, q querier, user *models.User) error {
	query := `
		INSERT INTO users (username, password_kind, password_value, role, has_vehicles, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := q.ExecContext(ctx, query,
		user.Username,
		string(user.Password.Kind),
		user.Password.Value,
		string(user.Role),
		user.Vehicles != nil,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}

	for _, v := range user.Vehicles {
		if err := insertVehicle(ctx, q, userID, v); err != nil {
			return err
		}
	}

	return nil
}

func insertVehicle(ctx context.Context, q querier, userID int64, v models.Vehicle) error {
	query := `
		INSERT INTO vehicles (user_id, year, make, model, trim_name, trim_gid)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := q.ExecContext(ctx, query, userID, v.Year, v.Make, v.Model, v.Trim.Name, v.Trim.GID); err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}

	return nil
}

// selectUsers loads users with their vehicles in directory order; limit < 0 means no limit
func selectUsers(ctx context.Context, q querier, username string, limit int) ([]userRow, error) {
	query := `
		SELECT id, username, password_kind, password_value, role, has_vehicles, created_at
		FROM users
		WHERE username = ?
		ORDER BY id
		LIMIT ?
	`

	rows, err := q.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var (
		result      []userRow
		hasVehicles []bool
	)

	for rows.Next() {
		var (
			r       = userRow{user: &models.User{}}
			kind    string
			role    string
			vehicle bool
		)
		if err := rows.Scan(
			&r.id,
			&r.user.Username,
			&kind,
			&r.user.Password.Value,
			&role,
			&vehicle,
			&r.user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		r.user.Password.Kind = models.PasswordKind(kind)
		r.user.Role = models.Role(role)
		result = append(result, r)
		hasVehicles = append(hasVehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	_ = rows.Close()

	// соединение одно, поэтому машины загружаем после закрытия rows
	for i := range result {
		if !hasVehicles[i] {
			continue
		}
		vehicles, err := selectVehicles(ctx, q, result[i].id)
		if err != nil {
			return nil, err
		}
		result[i].user.Vehicles = vehicles
	}

	return result, nil
}

// selectVehicles returns a non-nil list of the user's vehicles in insertion order
func selectVehicles(ctx context.Context, q querier, userID int64) ([]models.Vehicle, error) {
	query := `
		SELECT year, make, model, trim_name, trim_gid
		FROM vehicles
		WHERE user_id = ?
		ORDER BY id
	`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.Year, &v.Make, &v.Model, &v.Trim.Name, &v.Trim.GID); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return vehicles, nil
}

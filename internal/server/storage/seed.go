package storage

import (
	"time"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
)

// SeedUsers returns the built-in legacy accounts loaded at startup.
// The list intentionally keeps two records named chris@google.com.
func SeedUsers() []*models.User {
	now := time.Now().UTC()

	return []*models.User{
		{
			Username:  "chris@google.com",
			Password:  models.PlaintextPassword("mysecretpassword"),
			Role:      models.RoleAdmin,
			CreatedAt: now,
		},
		{
			Username: "dog76@aol.com",
			Password: models.PlaintextPassword("password123"),
			Role:     models.RoleUser,
			Vehicles: []models.Vehicle{
				{Year: 2024, Make: "BMW", Model: "X3", Trim: models.Trim{Name: "330i xDrive", GID: 13332}},
				{Year: 2025, Make: "AUDI", Model: "A4", Trim: models.Trim{Name: "40 Premium Plus", GID: 12245}},
			},
			CreatedAt: now,
		},
		{
			Username:  "rat76@aol.com",
			Password:  models.PlaintextPassword("chris@google.com"),
			Role:      models.RoleAffiliate,
			CreatedAt: now,
		},
		{
			Username: "chris@google.com",
			Password: models.PlaintextPassword("Womp!889"),
			Role:     models.RoleUser,
			Vehicles: []models.Vehicle{
				{Year: 2024, Make: "JEEP", Model: "WRANGLER UNLIMITED", Trim: models.Trim{Name: "4XE", GID: 24455}},
				{Year: 2025, Make: "MERCEDES-BENZ", Model: "GLS", Trim: models.Trim{Name: "4D WAGON GLS450 4WD", GID: 55544}},
			},
			CreatedAt: now,
		},
	}
}

// DuplicateUsernames returns usernames that occur more than once, in first-seen order.
func DuplicateUsernames(users []*models.User) []string {
	seen := make(map[string]int, len(users))
	var dups []string
	for _, u := range users {
		seen[u.Username]++
		if seen[u.Username] == 2 {
			dups = append(dups, u.Username)
		}
	}
	return dups
}

package cli

import (
	"context"
)

func (c *Cli) runLegacyAuth(ctx context.Context) error {
	username, password, err := c.readCredentials()
	if err != nil {
		return err
	}

	resp, err := c.server.LegacyAuth(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println("✓ Credentials accepted (v1)")
	c.io.Printf("Username: %s\n", resp.Username)
	c.io.Printf("Role:     %s\n", resp.Role)
	return nil
}

func (c *Cli) runLegacyVehicles(ctx context.Context) error {
	username, password, err := c.readCredentials()
	if err != nil {
		return err
	}

	resp, err := c.server.LegacyUserData(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Printf("Vehicles of %s (v1):\n", username)
	c.printVehicles(resp.Vehicles)
	return nil
}

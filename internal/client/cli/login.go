package cli

import (
	"context"
	"time"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, password, err := c.readCredentials()
	if err != nil {
		return err
	}

	authData, err := c.session.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", authData.Username)
	c.io.Printf("Access token expires:  %s\n", time.Unix(authData.AccessExpiresAt, 0).Format(time.RFC3339))
	c.io.Printf("Session expires:       %s\n", time.Unix(authData.RefreshExpiresAt, 0).Format(time.RFC3339))
	return nil
}

func (c *Cli) runRefresh(ctx context.Context) error {
	authData, err := c.session.Refresh(ctx)
	if err != nil {
		return err
	}

	c.io.Println("✓ Access token refreshed")
	c.io.Printf("Access token expires: %s\n", time.Unix(authData.AccessExpiresAt, 0).Format(time.RFC3339))
	return nil
}

package cli

import (
	"context"
	"errors"
	"time"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	if c.opts.ServerURL != "" {
		c.io.Printf("Server URL: %s\n", c.opts.ServerURL)
	}
	if health, err := c.server.Health(ctx); err != nil {
		c.io.Printf("Server: unavailable (%v)\n", err)
	} else {
		c.io.Printf("Server: %s (version %s)\n", health.Status, health.Version)
	}

	authData, err := c.session.Status(ctx)
	if errors.Is(err, auth.ErrNotAuthenticated) {
		c.io.Println("Session: Not authenticated")
		c.io.Println("Run 'login' to authenticate.")
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now()
	c.io.Printf("Session: %s\n", authData.Username)

	refreshAt := time.Unix(authData.RefreshExpiresAt, 0)
	if authData.RefreshExpired(now) {
		c.io.Println("⚠️  Session has expired. Please login again.")
		return nil
	}
	c.io.Printf("Session expires: %s (%s left)\n", refreshAt.Format(time.RFC3339), refreshAt.Sub(now).Round(time.Second))

	if authData.AccessExpired(now) {
		c.io.Println("Access token: expired, it will be refreshed on the next request")
	} else {
		accessAt := time.Unix(authData.AccessExpiresAt, 0)
		c.io.Printf("Access token expires: %s\n", accessAt.Format(time.RFC3339))
	}
	return nil
}

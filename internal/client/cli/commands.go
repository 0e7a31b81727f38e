package cli

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownCommand неизвестная команда
var ErrUnknownCommand = errors.New("unknown command")

// Run выполняет команду с аргументами args (без имени команды)
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "refresh":
		return c.runRefresh(ctx)
	case "vehicles":
		return c.runVehicles(ctx)
	case "add-vehicle":
		return c.runAddVehicle(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "legacy-auth":
		return c.runLegacyAuth(ctx)
	case "legacy-vehicles":
		return c.runLegacyVehicles(ctx)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

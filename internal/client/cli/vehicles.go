package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
)

func (c *Cli) runVehicles(ctx context.Context) error {
	resp, err := c.session.Vehicles(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("Vehicles of %s:\n", resp.Username)
	c.printVehicles(resp.Vehicles)
	return nil
}

func (c *Cli) runAddVehicle(ctx context.Context, args []string) error {
	vehicle, err := c.readVehicle(args)
	if err != nil {
		return err
	}

	resp, err := c.session.AddVehicle(ctx, vehicle)
	if err != nil {
		return err
	}

	c.io.Printf("✓ %s\n", resp.Message)
	list := make([]string, 0, len(resp.Vehicles))
	for _, v := range resp.Vehicles {
		list = append(list, v.String())
	}
	c.printVehicles(list)
	return nil
}

// readVehicle берет поля из флагов и спрашивает недостающие
func (c *Cli) readVehicle(args []string) (*models.VehicleInput, error) {
	fs := flag.NewFlagSet("add-vehicle", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	year := fs.Int("year", 0, "model year")
	maker := fs.String("make", "", "manufacturer")
	model := fs.String("model", "", "model")
	trim := fs.String("trim", "", "trim name")
	gid := fs.Int("gid", 0, "trim id")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("invalid add-vehicle arguments: %w", err)
	}

	var err error
	if *year == 0 {
		if *year, err = c.readInt("Year: "); err != nil {
			return nil, err
		}
	}
	if *maker == "" {
		if *maker, err = c.io.ReadInput("Make: "); err != nil {
			return nil, err
		}
	}
	if *model == "" {
		if *model, err = c.io.ReadInput("Model: "); err != nil {
			return nil, err
		}
	}
	if *trim == "" {
		if *trim, err = c.io.ReadInput("Trim: "); err != nil {
			return nil, err
		}
	}
	if *gid == 0 {
		if *gid, err = c.readInt("Trim GID: "); err != nil {
			return nil, err
		}
	}

	return &models.VehicleInput{
		Year:  *year,
		Make:  *maker,
		Model: *model,
		Trim:  &models.Trim{Name: *trim, GID: *gid},
	}, nil
}

func (c *Cli) readInt(prompt string) (int, error) {
	s, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

func (c *Cli) printVehicles(list []string) {
	if len(list) == 0 {
		c.io.Println("  (no vehicles)")
		return
	}
	for i, v := range list {
		c.io.Printf("  %d. %s\n", i+1, v)
	}
}

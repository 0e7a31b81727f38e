package validation

import (
	"errors"

	"github.com/carlosmsv/Auto-Ninjas-Auth/internal/models"
)

// ErrMissingVehicleInfo is returned when any required vehicle field is absent.
var ErrMissingVehicleInfo = errors.New("missing vehicle information")

// ValidateVehicle requires year, make, model, trim.name and trim.gid.
// Zero values count as missing.
func ValidateVehicle(in *models.VehicleInput) error {
	switch {
	case in == nil,
		in.Year == 0,
		in.Make == "",
		in.Model == "",
		in.Trim == nil,
		in.Trim.Name == "",
		in.Trim.GID == 0:
		return ErrMissingVehicleInfo
	}
	return nil
}

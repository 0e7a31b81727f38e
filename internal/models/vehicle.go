package models

import "fmt"

// Trim комплектация автомобиля
type Trim struct {
	Name string `json:"name"`
	GID  int    `json:"gid"`
}

// Vehicle автомобиль пользователя
type Vehicle struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Trim  Trim   `json:"trim"`
	Year  int    `json:"year"`
}

// String formats the vehicle as "<year> <make> <model> <trim.name>".
func (v Vehicle) String() string {
	return fmt.Sprintf("%d %s %s %s", v.Year, v.Make, v.Model, v.Trim.Name)
}

// VehicleInput is the client supplied vehicle. Trim is a pointer so that
// an absent trim object can be told apart from an empty one.
type VehicleInput struct {
	Trim  *Trim  `json:"trim"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// Vehicle converts a validated input into a catalog entry.
func (in VehicleInput) Vehicle() Vehicle {
	v := Vehicle{
		Year:  in.Year,
		Make:  in.Make,
		Model: in.Model,
	}
	if in.Trim != nil {
		v.Trim = *in.Trim
	}
	return v
}

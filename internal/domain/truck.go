package domain

import "fmt"

// Truck identifies a fleet vehicle and, implicitly, its driver's login
// identity (the driver name doubles as the username).
type Truck struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DriverName string `json:"driverName"`
	Password   string `json:"password"`
	Color      string `json:"color"`
}

const (
	DefaultTruckPassword = "123"
	DefaultTruckColor    = "#000000"
)

// NewTruck builds a truck with the fleet defaults. n is the 1-based
// position the truck takes in the fleet, used only for default naming.
func NewTruck(id string, n int) Truck {
	return Truck{
		ID:         id,
		Name:       fmt.Sprintf("Camioneta %d", n),
		DriverName: fmt.Sprintf("Chofer %d", n),
		Password:   DefaultTruckPassword,
		Color:      DefaultTruckColor,
	}
}

package ports

import (
	"context"
	"errors"

	"fleet-route-service/internal/domain"
)

// Returned when a position fix could not be acquired (provider down,
// permission denied, or timed out via the caller's context).
var ErrLocationUnavailable = errors.New("locator: location unavailable")

// Contract for acquiring the current position of a truck's device.
type Locator interface {
	// Locate returns a current fix for the truck, or a failure. Callers
	// bound the wait with the context; there is no retry obligation.
	Locate(ctx context.Context, truckID string) (domain.Coordinates, error)
}

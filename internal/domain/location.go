package domain

import "time"

// TruckLocation is the last known position of a truck's device. A stale
// value is kept indefinitely rather than overwritten with "unknown".
type TruckLocation struct {
	Coordinates
	Timestamp time.Time `json:"timestamp"`
}

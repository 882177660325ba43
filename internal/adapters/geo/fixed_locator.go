package geo

import (
	"context"
	"fmt"
	"sync"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
)

// FixedLocator serves positions from a static table. Used in tests and in
// local mode where no device gateway exists.
type FixedLocator struct {
	mu        sync.RWMutex
	positions map[string]domain.Coordinates
}

func NewFixedLocator(positions map[string]domain.Coordinates) *FixedLocator {
	if positions == nil {
		positions = map[string]domain.Coordinates{}
	}
	return &FixedLocator{positions: positions}
}

func (f *FixedLocator) Locate(ctx context.Context, truckID string) (domain.Coordinates, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c, ok := f.positions[truckID]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("%w: no fix for truck %q", ports.ErrLocationUnavailable, truckID)
	}
	return c, nil
}

// SetPosition updates a truck's served position.
func (f *FixedLocator) SetPosition(truckID string, c domain.Coordinates) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positions[truckID] = c
}

// Forget removes a truck's position so subsequent fixes fail.
func (f *FixedLocator) Forget(truckID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.positions, truckID)
}

package services

import (
	"context"
	"log"
	"time"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
	"fleet-route-service/internal/state"
)

// Tracker periodically polls each truck's position for the dashboard.
// A failed poll keeps the previous value: last known beats unknown.
type Tracker struct {
	db       *state.DB
	locator  ports.Locator
	interval time.Duration
	now      func() time.Time
}

func NewTracker(db *state.DB, locator ports.Locator, interval time.Duration) *Tracker {
	return &Tracker{db: db, locator: locator, interval: interval, now: time.Now}
}

// Run polls on a fixed interval until the context is cancelled. Each poll
// is idempotent, so an overlapping or skipped tick is harmless.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Poll(ctx)
		}
	}
}

// Poll fetches a fix per truck and overwrites the stored location on
// success only.
func (t *Tracker) Poll(ctx context.Context) {
	for _, truck := range t.db.Trucks(ctx) {
		fix, err := t.locator.Locate(ctx, truck.ID)
		if err != nil {
			log.Printf("tracker: truck=%s locate failed: %v (keeping last known)", truck.ID, err)
			continue
		}

		t.db.SaveTruckLocation(ctx, truck.ID, domain.TruckLocation{
			Coordinates: fix,
			Timestamp:   t.now(),
		})
	}
}

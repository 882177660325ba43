package services

import (
	"context"
	"testing"
	"time"

	"fleet-route-service/internal/adapters/geo"
	"fleet-route-service/internal/domain"
)

func TestTrackerPollKeepsLastKnownOnFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.SaveTrucks(ctx, []domain.Truck{{ID: "t1"}, {ID: "t2"}})
	locator := geo.NewFixedLocator(map[string]domain.Coordinates{
		"t1": {Latitude: 19.4, Longitude: -99.1},
	})

	tracker := NewTracker(db, locator, time.Minute)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return at }

	tracker.Poll(ctx)

	loc, ok := db.TruckLocation(ctx, "t1")
	if !ok || loc.Latitude != 19.4 || !loc.Timestamp.Equal(at) {
		t.Fatalf("t1 location = %+v ok=%v", loc, ok)
	}
	if _, ok := db.TruckLocation(ctx, "t2"); ok {
		t.Fatal("t2 never had a fix; nothing should be stored")
	}

	// the device goes dark: the last known value must survive
	locator.Forget("t1")
	tracker.now = func() time.Time { return at.Add(5 * time.Minute) }
	tracker.Poll(ctx)

	loc, ok = db.TruckLocation(ctx, "t1")
	if !ok || !loc.Timestamp.Equal(at) {
		t.Fatalf("last known overwritten: %+v ok=%v", loc, ok)
	}

	// and a later good fix overwrites it
	locator.SetPosition("t1", domain.Coordinates{Latitude: 20, Longitude: -100})
	tracker.Poll(ctx)

	loc, _ = db.TruckLocation(ctx, "t1")
	if loc.Latitude != 20 || !loc.Timestamp.Equal(at.Add(5*time.Minute)) {
		t.Fatalf("location = %+v", loc)
	}
}

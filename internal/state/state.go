// Package state is the application's view of the shared key-value store:
// named keys, JSON codecs, and fail-soft semantics. A storage failure is
// logged and the caller proceeds with a default value; it never propagates.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
)

const (
	KeyTrucks          = "trucks"
	KeyClients         = "clients"
	KeyAdminPassword   = "adminPassword"
	KeyConsultPassword = "consultPassword"
)

const (
	DefaultAdminPassword   = "654321"
	DefaultConsultPassword = "2025"
)

// DeliveriesKey names the authoritative per-truck delivery list.
func DeliveriesKey(truckID string) string { return "truckDeliveries_" + truckID }

// LocationKey names a truck's last known location.
func LocationKey(truckID string) string { return "truckLocation_" + truckID }

// DB wraps the store port with the application's keys and codecs.
type DB struct {
	store ports.Store
}

func New(store ports.Store) *DB {
	return &DB{store: store}
}

// Load reads and unmarshals key, returning def when the key is absent or
// the read fails. Failures other than a missing key are logged.
func Load[T any](ctx context.Context, db *DB, key string, def T) T {
	data, err := db.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			log.Printf("state: load key=%s err=%v (using default)", key, err)
		}
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("state: decode key=%s err=%v (using default)", key, err)
		return def
	}
	return v
}

// save marshals and writes v under key, logging failures.
func (db *DB) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("state: encode key=%s err=%v", key, err)
		return
	}
	if err := db.store.Set(ctx, key, data); err != nil {
		log.Printf("state: save key=%s err=%v", key, err)
	}
}

func (db *DB) remove(ctx context.Context, key string) {
	if err := db.store.Remove(ctx, key); err != nil {
		log.Printf("state: remove key=%s err=%v", key, err)
	}
}

func (db *DB) Trucks(ctx context.Context) []domain.Truck {
	return Load(ctx, db, KeyTrucks, []domain.Truck{})
}

func (db *DB) SaveTrucks(ctx context.Context, trucks []domain.Truck) {
	db.save(ctx, KeyTrucks, trucks)
}

func (db *DB) Clients(ctx context.Context) []domain.Client {
	return Load(ctx, db, KeyClients, []domain.Client{})
}

func (db *DB) SaveClients(ctx context.Context, clients []domain.Client) {
	db.save(ctx, KeyClients, clients)
}

// Deliveries returns the truck's delivery list. A truck that was never
// assigned anything (or was deleted) yields an empty list, never an error.
func (db *DB) Deliveries(ctx context.Context, truckID string) []domain.Delivery {
	return Load(ctx, db, DeliveriesKey(truckID), []domain.Delivery{})
}

// SaveDeliveries writes the truck's list. An empty list removes the key:
// an absent mirror and an empty route are the same thing.
func (db *DB) SaveDeliveries(ctx context.Context, truckID string, deliveries []domain.Delivery) {
	if len(deliveries) == 0 {
		db.remove(ctx, DeliveriesKey(truckID))
		return
	}
	db.save(ctx, DeliveriesKey(truckID), deliveries)
}

func (db *DB) RemoveDeliveries(ctx context.Context, truckID string) {
	db.remove(ctx, DeliveriesKey(truckID))
}

func (db *DB) TruckLocation(ctx context.Context, truckID string) (domain.TruckLocation, bool) {
	var zero domain.TruckLocation
	loc := Load(ctx, db, LocationKey(truckID), zero)
	return loc, loc != zero
}

func (db *DB) SaveTruckLocation(ctx context.Context, truckID string, loc domain.TruckLocation) {
	db.save(ctx, LocationKey(truckID), loc)
}

func (db *DB) RemoveTruckLocation(ctx context.Context, truckID string) {
	db.remove(ctx, LocationKey(truckID))
}

func (db *DB) AdminPassword(ctx context.Context) string {
	return Load(ctx, db, KeyAdminPassword, DefaultAdminPassword)
}

func (db *DB) SetAdminPassword(ctx context.Context, password string) {
	db.save(ctx, KeyAdminPassword, password)
}

func (db *DB) ConsultPassword(ctx context.Context) string {
	return Load(ctx, db, KeyConsultPassword, DefaultConsultPassword)
}

func (db *DB) SetConsultPassword(ctx context.Context, password string) {
	db.save(ctx, KeyConsultPassword, password)
}

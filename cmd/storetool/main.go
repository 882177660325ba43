package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fleet-route-service/internal/adapters/store"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/db"
	"fleet-route-service/internal/state"
)

// Drivers the fleet starts with. Editable from the admin screen afterwards.
var seedDrivers = []string{"Beto", "Juan", "Pedro"}

// storetool prepares the postgres backend: it creates the key-value table
// and seeds the initial fleet when the store is empty. Safe to run twice.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	log.Println("Initializing store schema...")
	if err := store.InitSchema(sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seed(state.New(store.NewPostgresStore(sqlDB)))
}

func seed(db *state.DB) {
	ctx := context.Background()

	if trucks := db.Trucks(ctx); len(trucks) > 0 {
		log.Printf("Store already seeded trucks=%d", len(trucks))
		return
	}

	log.Println("Seeding initial fleet...")
	trucks := make([]domain.Truck, 0, len(seedDrivers))
	for i, driver := range seedDrivers {
		truck := domain.NewTruck(uuid.NewString(), i+1)
		truck.DriverName = driver
		trucks = append(trucks, truck)
	}
	db.SaveTrucks(ctx, trucks)
	log.Printf("Seeding complete trucks=%d", len(trucks))
}

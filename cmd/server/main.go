package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fleet-route-service/internal/adapters/geo"
	"fleet-route-service/internal/adapters/store"
	"fleet-route-service/internal/api"
	"fleet-route-service/internal/api/session"
	"fleet-route-service/internal/config"
	"fleet-route-service/internal/platform/db"
	"fleet-route-service/internal/ports"
	"fleet-route-service/internal/services"
	"fleet-route-service/internal/state"
)

// main is the application composition root.
// It wires concrete adapters (store backend, GPS locator) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	kv, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	stateDB := state.New(kv)

	locator, err := openLocator(cfg)
	if err != nil {
		log.Fatal(err)
	}

	svc := api.Services{
		Auth:        services.NewAuthService(stateDB),
		Assignments: services.NewAssignmentService(stateDB),
		Clients:     services.NewClientService(stateDB),
		Completions: services.NewCompletionService(stateDB, locator),
		Reports:     services.NewReportService(stateDB),
	}

	router := api.NewRouter(svc, session.NewStore())

	// Position polling runs for the life of the process.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker := services.NewTracker(stateDB, locator, cfg.PollInterval)
	go tracker.Run(ctx)

	log.Printf("Server listening addr=%s store=%s", cfg.Addr, cfg.StoreBackend)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openStore(cfg config.Config) (ports.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return store.NewMemoryStore(), func() {}, nil

	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("open store: DATABASE_URL is required for the postgres backend")
		}
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := store.InitSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return store.NewPostgresStore(sqlDB), func() { sqlDB.Close() }, nil

	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("open store: verify redis connection: %w", err)
		}
		return store.NewRedisStore(client), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("open store: unknown backend %q", cfg.StoreBackend)
	}
}

// openLocator returns the GPS gateway client, or a static locator when no
// gateway is configured so local runs still work end to end.
func openLocator(cfg config.Config) (ports.Locator, error) {
	if cfg.LocatorURL == "" {
		log.Println("LOCATOR_URL not set, using static in-process locator")
		return geo.NewFixedLocator(nil), nil
	}
	return geo.NewHTTPLocator(cfg.LocatorURL, cfg.LocatorKey)
}

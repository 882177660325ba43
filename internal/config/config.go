// Package config reads process configuration from the environment.
// Callers load a .env file first (godotenv) if they want one.
package config

import (
	"os"
	"strings"
	"time"
)

// Store backends the server can be pointed at.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config is everything the server needs to start.
type Config struct {
	Addr string

	// StoreBackend selects where application state lives: memory (tests
	// and local runs), postgres or redis.
	StoreBackend string
	DatabaseURL  string
	RedisURL     string

	// LocatorURL points at the GPS gateway; empty means positions are
	// served from a static in-process locator.
	LocatorURL string
	LocatorKey string

	// PollInterval is how often the tracker refreshes truck positions.
	PollInterval time.Duration
}

func Load() Config {
	return Config{
		Addr:         ":" + Get("PORT", "8080"),
		StoreBackend: strings.ToLower(Get("STORE_BACKEND", StoreMemory)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     Get("REDIS_URL", "redis://localhost:6379/0"),
		LocatorURL:   os.Getenv("LOCATOR_URL"),
		LocatorKey:   os.Getenv("LOCATOR_API_KEY"),
		PollInterval: duration("POLL_INTERVAL", 5*time.Minute),
	}
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

package ports

import (
	"context"
	"errors"
)

// Returned by Store.Get when a key has never been written (or was removed).
var ErrNotFound = errors.New("store: key not found")

// Port: a string-keyed value store shared by every role of the application.
// Values are opaque bytes (JSON at this boundary); key naming and defaults
// live above the port.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

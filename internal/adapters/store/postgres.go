package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/ports"
)

// PostgresStore is a Postgres-backed implementation of the Store port.
// Values live in a single key-value table with JSONB payloads.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// Initialize the key-value schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createKVQuery := `
	CREATE TABLE IF NOT EXISTS app_kv (
		key   TEXT PRIMARY KEY,
		value JSONB NOT NULL
	);
	`

	if _, err := db.Exec(createKVQuery); err != nil {
		return fmt.Errorf("init schema: create app_kv: %w", err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "store.pg.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}

	var value []byte
	row := s.DB.QueryRowContext(ctx, `SELECT value FROM app_kv WHERE key = $1;`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("get %q: scan value: %w", key, err)
	}

	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "store.pg.Set")(&err)

	if s.DB == nil {
		return errors.New("postgres store: DB is nil")
	}

	query := `
	INSERT INTO app_kv (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`
	if _, err := s.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %q: upsert: %w", key, err)
	}

	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) (err error) {
	defer obs.Time(ctx, "store.pg.Remove")(&err)

	if s.DB == nil {
		return errors.New("postgres store: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM app_kv WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("remove %q: delete: %w", key, err)
	}

	return nil
}

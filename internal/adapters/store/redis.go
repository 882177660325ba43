package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/ports"
)

// RedisStore is a Redis-backed implementation of the Store port. Keys are
// namespaced so the application can share an instance.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "fleet:"}
}

func (r *RedisStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "store.redis.Get")(&err)

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "store.redis.Set")(&err)

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	return nil
}

func (r *RedisStore) Remove(ctx context.Context, key string) (err error) {
	defer obs.Time(ctx, "store.redis.Remove")(&err)

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}

	return nil
}

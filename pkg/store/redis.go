package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is the Redis-backed Store. Values persist across process restarts,
// giving view and theme preferences cross-reload continuity. Keys carry no
// TTL; notes in particular are kept until explicitly deleted.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed store.
func NewRedis(client *redis.Client) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &Redis{client: client}
}

// Get returns the value for key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			storeMisses.WithLabelValues("redis").Inc()
			return "", ErrNotFound
		}
		storeErrors.WithLabelValues("redis", "get").Inc()
		return "", fmt.Errorf("redis get: %w", err)
	}
	storeOps.WithLabelValues("redis", "get").Inc()
	return value, nil
}

// Set writes the value for key without expiration.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		storeErrors.WithLabelValues("redis", "set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	storeOps.WithLabelValues("redis", "set").Inc()
	return nil
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		storeErrors.WithLabelValues("redis", "delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	storeOps.WithLabelValues("redis", "delete").Inc()
	return nil
}

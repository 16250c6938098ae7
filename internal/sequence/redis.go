// Package sequence allocates sequential business ids for backends that have
// no native auto-increment.
package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CurrentFunc reports the highest id already in use (or the record count) for
// a sequence. It seeds a counter the first time the counter is touched.
type CurrentFunc func(ctx context.Context) (int64, error)

// Allocator hands out the next id of a named sequence.
type Allocator interface {
	Next(ctx context.Context, key string, current CurrentFunc) (int64, error)
}

// RedisCounter keeps one INCR counter per sequence. Unlike scanning the store
// on every create, concurrent callers never receive the same id.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

var _ Allocator = (*RedisCounter)(nil)

// New creates a Redis client for the counter.
func New(addr, password string, db int) *RedisCounter {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return NewRedisCounter(redis.NewClient(opts))
}

// NewRedisCounter wraps an existing client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client, prefix: "museum:seq:"}
}

// Next seeds the counter from current when it does not exist yet, then
// increments it atomically. Two callers racing on the seed both compute it,
// only the first SETNX wins.
func (c *RedisCounter) Next(ctx context.Context, key string, current CurrentFunc) (int64, error) {
	k := c.prefix + key

	exists, err := c.client.Exists(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", key, err)
	}
	if exists == 0 {
		seed, err := current(ctx)
		if err != nil {
			return 0, fmt.Errorf("sequence %s seed: %w", key, err)
		}
		if err := c.client.SetNX(ctx, k, seed, 0).Err(); err != nil {
			return 0, fmt.Errorf("sequence %s seed: %w", key, err)
		}
	}

	next, err := c.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", key, err)
	}
	return next, nil
}

// Ping checks that Redis answers.
func (c *RedisCounter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *RedisCounter) Close() error {
	return c.client.Close()
}

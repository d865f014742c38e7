package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache shared between processes. Values are stored as JSON with
// the TTL applied by redis itself.
type Redis[V any] struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedis[V any](client redis.Cmdable, prefix string, ttl time.Duration) *Redis[V] {
	return &Redis[V]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *Redis[V]) key(key string) string {
	return r.prefix + key
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var value V

	raw, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return value, ErrMiss
		}
		return value, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Undecodable entries are treated as absent; the next Set overwrites them.
		return value, ErrMiss
	}
	return value, nil
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.key(key), string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

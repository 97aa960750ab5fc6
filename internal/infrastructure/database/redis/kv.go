// internal/infrastructure/database/redis/kv.go
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV exposes the small key-value surface the session stores need.
// A missing key is reported as (nil, nil), not as an error.
type KV struct {
	client *redis.Client
}

// NewKV creates a KV adapter over an existing Redis client
func NewKV(client *redis.Client) *KV {
	return &KV{client: client}
}

// Get retrieves the value stored under key
func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := k.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set stores value under key with the given expiration
func (k *KV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return k.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes key; deleting a missing key is not an error
func (k *KV) Delete(ctx context.Context, key string) error {
	return k.client.Del(ctx, key).Err()
}

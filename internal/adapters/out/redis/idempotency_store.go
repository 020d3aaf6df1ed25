// Package redis stores idempotency keys of order creation requests.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodorders/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultKeyPrefix = "foodorders:idempotency"
	DefaultTTL       = 24 * time.Hour
)

// IdempotencyStoreConfig configures the store. Zero values fall back to the
// defaults.
type IdempotencyStoreConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// IdempotencyStore maps a client supplied key to the order it created. Keys
// expire after TTL.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, config IdempotencyStoreConfig) *IdempotencyStore {
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	return &IdempotencyStore{client: client, prefix: config.KeyPrefix, ttl: config.TTL}
}

func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (kernel.UUID, bool, error) {
	value, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("lookup idempotency key: %w", err)
	}

	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("stored idempotency value %q: %w", value, err)
	}
	return id, true, nil
}

// Remember stores id under key with SETNX semantics.
func (s *IdempotencyStore) Remember(ctx context.Context, key string, id kernel.UUID) (bool, error) {
	stored, err := s.client.SetNX(ctx, s.redisKey(key), id.String(), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("remember idempotency key: %w", err)
	}
	return stored, nil
}

func (s *IdempotencyStore) redisKey(key string) string {
	return s.prefix + ":" + key
}

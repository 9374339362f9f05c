package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis instance, for deployments where
// multiple replicas should share the centre list.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis using the cache configuration and verifies the
// connection with a ping.
func NewRedis(ctx context.Context, cfg *config.CacheConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	return &Redis{client: client}, nil
}

// Get unmarshals the stored value into dest, or returns ErrMiss.
func (r *Redis) Get(ctx context.Context, key string, dest any) error {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return unmarshalValue([]byte(val), dest)
}

// Set stores the value until the TTL elapses.
func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := marshalValue(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func marshalValue(value any) ([]byte, error) {
	return json.Marshal(value)
}

func unmarshalValue(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}

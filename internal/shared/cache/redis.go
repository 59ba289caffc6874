// Package cache provides the Redis client used for per-session state: OAuth
// states and active-organization pointers.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/warewise/server/internal/shared/config"
)

const pingTimeout = 5 * time.Second

// NewRedisClient creates a Redis client from the configuration and verifies
// the connection before returning it, so a misconfigured address fails at
// startup rather than on the first session lookup.
func NewRedisClient(cfg *config.RedisConfig) (redis.UniversalClient, error) {
	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}

	return client, nil
}

// Close closes the Redis client.
func Close(client redis.UniversalClient) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

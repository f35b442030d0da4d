package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewClient returns nil when no address is configured; callers treat a nil
// client as "caching disabled" rather than an error.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

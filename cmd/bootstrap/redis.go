package bootstrap

import (
	"context"

	infraredis "github.com/abdulsamad100/books-cave-api/internal/infra/redis"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient yields a nil client when Redis is not configured, which
// downstream consumers treat as cache disabled.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, err := infraredis.NewClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

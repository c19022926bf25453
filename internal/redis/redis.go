package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sharpcut-app/booking-api/internal/config"
	"github.com/sharpcut-app/booking-api/internal/logger"
)

func NewClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Redis only backs the cache and the event channel; the API can
		// serve without it.
		logger.L().Warn("redis unreachable, cache and events degraded")
	}

	return client
}

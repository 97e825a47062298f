package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskboard-api/internal/config"
)

// setupRedis establishes a connection to the Redis server backing the
// task-listing cache. Returns the client if successful, or an error if
// the server is unreachable.
func setupRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connection established", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return client, nil
}

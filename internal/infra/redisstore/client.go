// Package redisstore holds the Redis-backed adapters: the cleanup pass lock and the alert and
// notification channels.
package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cancel-saga/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Connect returns a client and a cleanup func, failing when the server does not answer PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	slog.Info("Redis connection established", "addr", cfg.Addr, "db", cfg.DB)

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
	return client, cleanup, nil
}

// nti-admin/config/redis.go

package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a Redis client, or nil when REDIS_ADDR is unset
// or the server is unreachable. Callers treat a nil client as
// "caching disabled" and fall through to the database.
func ConnectRedis(ctx context.Context, cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR is not set, caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("redis connection failed, caching disabled", "error", err)
		return nil
	}

	slog.Info("connected to redis")
	return rdb
}

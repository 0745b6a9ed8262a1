package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the shared Redis client. One client serves both roles the
// app has for Redis: the notification job queue (worker package) and the
// barcode read-through cache (producto service). Fails fast at startup if the
// server is unreachable — a silently dead queue would swallow order
// notifications.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

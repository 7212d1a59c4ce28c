package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// Init connects the limiter to redis. An empty addr leaves the limiter
// disabled; Allow then approves everything.
func Init(addr, password string, db int) error {
	if addr == "" {
		return nil
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// Enabled reports whether a redis backend is connected.
func Enabled() bool {
	return rdb != nil
}

// Allow checks and records one hit against a fixed window counter. The first
// hit in a window sets the expiry.
func Allow(key string, max int, window time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		rdb.Expire(ctx, key, window)
	}
	return count <= int64(max), nil
}

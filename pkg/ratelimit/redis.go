package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed window counter shared by every instance talking
// to the same redis
type RedisLimiter struct {
	Redis    *redis.Client
	Prefix   string
	Requests int
	Window   time.Duration
}

func NewRedisLimiter(r *redis.Client, prefix string, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{Redis: r, Prefix: prefix, Requests: requests, Window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := fmt.Sprintf("%s:%s", l.Prefix, key)

	var (
		incr *redis.IntCmd
		pttl *redis.DurationCmd
	)

	_, err := l.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to count request, %w", err)
	}

	ttl := pttl.Val()

	// First hit of the window, or a key that lost its expiry
	if incr.Val() == 1 || ttl < 0 {
		if err := l.Redis.PExpire(ctx, redisKey, l.Window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set window expiry, %w", err)
		}
		ttl = l.Window
	}

	if incr.Val() > int64(l.Requests) {
		return Result{RetryAfter: ttl}, nil
	}

	return Result{Allowed: true}, nil
}

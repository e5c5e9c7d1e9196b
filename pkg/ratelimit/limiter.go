// Package ratelimit counts requests per key and decides whether another
// one is allowed
package ratelimit

import (
	"context"
	"time"
)

type Result struct {
	Allowed bool
	// How long the caller should wait before trying again. Zero when allowed
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

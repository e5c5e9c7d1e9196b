package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()

	m := NewMemoryLimiter(2, 5*time.Second)
	t.Cleanup(m.Close)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for range 2 {
		r, err := m.Allow(ctx, "1.2.3.4:GET /api/contacts")
		require.NoError(t, err)
		assert.True(t, r.Allowed)
	}

	r, err := m.Allow(ctx, "1.2.3.4:GET /api/contacts")
	require.NoError(t, err)
	assert.False(t, r.Allowed)
	assert.Positive(t, r.RetryAfter)

	// Other keys have their own bucket
	r, err = m.Allow(ctx, "1.2.3.4:POST /api/contacts")
	require.NoError(t, err)
	assert.True(t, r.Allowed)

	now = now.Add(5 * time.Second)

	r, err = m.Allow(ctx, "1.2.3.4:GET /api/contacts")
	require.NoError(t, err)
	assert.True(t, r.Allowed)
}

func TestMemoryLimiterCleanup(t *testing.T) {
	m := NewMemoryLimiter(2, 5*time.Second)
	t.Cleanup(m.Close)

	now := time.Now()
	m.now = func() time.Time { return now }

	_, err := m.Allow(context.Background(), "key")
	require.NoError(t, err)

	m.cleanup()
	assert.Len(t, m.visitors, 1)

	now = now.Add(m.ttl + time.Second)
	m.cleanup()
	assert.Empty(t, m.visitors)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return mr, rdb
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)

	l := NewRedisLimiter(rdb, "rl", 2, 5*time.Second)

	for range 2 {
		r, err := l.Allow(ctx, "1.2.3.4:GET /api/contacts")
		require.NoError(t, err)
		assert.True(t, r.Allowed)
	}

	r, err := l.Allow(ctx, "1.2.3.4:GET /api/contacts")
	require.NoError(t, err)
	assert.False(t, r.Allowed)
	assert.Positive(t, r.RetryAfter)
	assert.LessOrEqual(t, r.RetryAfter, 5*time.Second)

	assert.True(t, mr.Exists("rl:1.2.3.4:GET /api/contacts"))

	mr.FastForward(5 * time.Second)

	r, err = l.Allow(ctx, "1.2.3.4:GET /api/contacts")
	require.NoError(t, err)
	assert.True(t, r.Allowed)
}

func TestRedisLimiterDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	l := NewRedisLimiter(rdb, "rl", 2, 5*time.Second)

	_, err := l.Allow(context.Background(), "key")
	assert.Error(t, err)
}

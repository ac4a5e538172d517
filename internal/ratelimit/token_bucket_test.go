package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, rate float64, burst int) (*AdminWriteLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	mr.SetTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := NewAdminWriteLimiterWithClient(client, rate, burst)
	require.NoError(t, err)
	return limiter, mr
}

func TestAdminWriteLimiterExhaustsBurst(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.Allow(ctx, "42")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
	}

	res, err := limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2, res.Limit)
	assert.Equal(t, time.Second, res.RetryAfter)
}

func TestAdminWriteLimiterRefills(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, 1)
	ctx := context.Background()

	res, err := limiter.Allow(ctx, "42")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, "42")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	mr.SetTime(time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC))
	res, err = limiter.Allow(ctx, "42")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAdminWriteLimiterKeysPerAdmin(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, 1)
	ctx := context.Background()

	res, err := limiter.Allow(ctx, "42")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, "43")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNilAdminWriteLimiterAllows(t *testing.T) {
	var limiter *AdminWriteLimiter
	res, err := limiter.Allow(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.False(t, limiter.Enabled())
}

func TestNewAdminWriteLimiterRejectsBadRate(t *testing.T) {
	_, err := NewAdminWriteLimiterWithClient(nil, 0, 1)
	assert.Error(t, err)
}

func TestDefaultBucketTTL(t *testing.T) {
	assert.Equal(t, 40*time.Second, defaultBucketTTL(1, 20))
	assert.Equal(t, time.Second, defaultBucketTTL(100, 1))
}

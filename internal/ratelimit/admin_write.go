package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyAdminWrite = "storefront:admin:write:%s"

// AdminWriteLimiter throttles catalog writes per admin. A nil limiter allows
// everything.
type AdminWriteLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

// NewAdminWriteLimiter returns nil when rate limiting is disabled.
func NewAdminWriteLimiter(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*AdminWriteLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("rate limit redis unreachable", zap.String("addr", addr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return NewAdminWriteLimiterWithClient(client, limitCfg.WriteRate, limitCfg.WriteBurst)
}

func NewAdminWriteLimiterWithClient(client redis.Scripter, rate float64, burst int) (*AdminWriteLimiter, error) {
	if rate <= 0 || burst <= 0 {
		return nil, errors.New("admin write rate limit must be positive")
	}
	return &AdminWriteLimiter{
		bucket: NewTokenBucket(client),
		rate:   rate,
		burst:  burst,
	}, nil
}

func (l *AdminWriteLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *AdminWriteLimiter) Allow(ctx context.Context, adminID string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyAdminWrite, strings.TrimSpace(adminID)), l.rate, l.burst)
}

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/rfernando-oulu/eComSync/internal/config"
	"go.uber.org/fx"
)

const keyAdminKeyFailures = "ecomsync:admin_key:failures:%s"

// AdminKeyLimiter throttles failed access-Key attempts per client address.
// A nil limiter allows everything.
type AdminKeyLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
}

func NewAdminKeyLimiter(lc fx.Lifecycle, cfg config.Config) (*AdminKeyLimiter, error) {
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
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return newAdminKeyLimiter(client, limitCfg.AdminKeyRate, limitCfg.AdminKeyBurst)
}

func newAdminKeyLimiter(client redis.Scripter, rate float64, burst int) (*AdminKeyLimiter, error) {
	if rate <= 0 || burst <= 0 {
		return nil, errors.New("admin key rate limit must be positive")
	}
	return &AdminKeyLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    rate,
		burst:   burst,
	}, nil
}

func (l *AdminKeyLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// RecordFailure spends one token for clientIP and reports whether the
// attempt is still within the allowance.
func (l *AdminKeyLimiter) RecordFailure(ctx context.Context, clientIP string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		clientIP = "unknown"
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyAdminKeyFailures, clientIP), l.rate, l.burst)
}

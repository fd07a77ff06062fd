package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hragentic/hr-gateway/internal/core/ports"
)

const rateLimitPrefix = "ratelimit"

// FixedWindowLimiter counts requests per client within fixed time windows.
// The window start is baked into the key and every key expires with its
// window, so the counter resets atomically at each window boundary. INCR is
// atomic in Redis, which keeps concurrent requests from one client from
// undercounting.
type FixedWindowLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

// NewFixedWindowLimiter creates a limiter allowing max requests per window.
func NewFixedWindowLimiter(client *redis.Client, window time.Duration, max int) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, window: window, max: max}
}

// Allow records one request for key and reports whether it fits the quota.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	now := time.Now()
	windowStart := now.Truncate(l.window)

	k := fmt.Sprintf("%s:%s:%d", rateLimitPrefix, key, windowStart.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit incr: %w", err)
	}

	count := int(incr.Val())
	decision := ports.RateDecision{
		Allowed:   count <= l.max,
		Remaining: l.max - count,
	}
	if decision.Remaining < 0 {
		decision.Remaining = 0
	}
	if !decision.Allowed {
		decision.RetryAfter = windowStart.Add(l.window).Sub(now)
	}
	return decision, nil
}

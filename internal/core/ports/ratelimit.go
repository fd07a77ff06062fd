package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of a quota check for one client.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter enforces a per-client request quota over a fixed window.
// Increments must be atomic so concurrent requests from one client never
// undercount.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}

package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hragentic/hr-gateway/internal/api/metrics"
	"github.com/hragentic/hr-gateway/internal/core/domain"
	"github.com/hragentic/hr-gateway/internal/core/ports"
)

// RateLimit enforces the per-client quota on the public API surface, keyed by
// client address. Paths listed in exempt bypass the quota entirely. When the
// quota store is unreachable the limiter fails open: dropping traffic because
// Redis is down would take the whole surface with it.
func RateLimit(limiter ports.RateLimiter, log zerolog.Logger, exempt ...string) echo.MiddlewareFunc {
	exemptPaths := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		exemptPaths[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := exemptPaths[c.Request().URL.Path]; ok {
				return next(c)
			}

			decision, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			if !decision.Allowed {
				metrics.RateLimitedTotal.Inc()
				retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return domain.ErrRateLimited
			}

			return next(c)
		}
	}
}

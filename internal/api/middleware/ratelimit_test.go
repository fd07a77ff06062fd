package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hragentic/hr-gateway/internal/core/domain"
	"github.com/hragentic/hr-gateway/internal/core/ports"
)

type stubLimiter struct {
	allowFn func(ctx context.Context, key string) (ports.RateDecision, error)
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	return s.allowFn(ctx, key)
}

func newLimitContext(path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(_ context.Context, key string) (ports.RateDecision, error) {
		if key == "" {
			t.Fatalf("expected client key")
		}
		return ports.RateDecision{Allowed: true, Remaining: 10}, nil
	}}

	c, rec := newLimitContext("/api/faq/ask")
	err := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_Exceeded(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context, string) (ports.RateDecision, error) {
		return ports.RateDecision{Allowed: false, RetryAfter: 42 * time.Second}, nil
	}}

	c, rec := newLimitContext("/api/faq/ask")
	err := RateLimit(limiter, zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if got := rec.Header().Get("Retry-After"); got != "42" {
		t.Fatalf("expected Retry-After 42, got %q", got)
	}
}

func TestRateLimit_FailsOpenOnStoreError(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context, string) (ports.RateDecision, error) {
		return ports.RateDecision{}, errors.New("redis down")
	}}

	c, rec := newLimitContext("/api/faq/ask")
	err := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("expected fail-open, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_ExemptPath(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context, string) (ports.RateDecision, error) {
		t.Fatalf("limiter must not run for exempt paths")
		return ports.RateDecision{}, nil
	}}

	c, rec := newLimitContext("/api/docs")
	err := RateLimit(limiter, zerolog.Nop(), "/api/docs")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

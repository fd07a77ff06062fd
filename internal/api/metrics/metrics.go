// Package metrics defines and registers all custom Prometheus metrics for the
// HR gateway. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// ── Proxy metrics ─────────────────────────────────────────────────────────────

// ProxyRequestsTotal counts relayed requests that received a peer response.
// Labels:
//   - service: the domain peer name (e.g. "payroll")
//   - code: the HTTP status code relayed from the peer
var ProxyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of requests relayed to domain peers, by peer and status code.",
	},
	[]string{"service", "code"},
)

// ProxyErrorsTotal counts outbound calls that failed at the transport level
// (timeout, connection refused) and were answered with a 503 envelope.
var ProxyErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_errors_total",
		Help:      "Total number of outbound calls that failed to reach their domain peer.",
	},
	[]string{"service"},
)

// ProxyRequestDuration measures the outbound leg end-to-end, connect through
// last response byte.
var ProxyRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "proxy_request_duration_seconds",
		Help:      "Duration of relayed requests from dispatch to response completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"service"},
)

// ── Gateway surface metrics ───────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the fixed-window limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
)

// HealthProbesTotal counts liveness probe outcomes per domain peer.
// Labels:
//   - service: the domain peer name
//   - status: "healthy" or "unhealthy"
var HealthProbesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "health_probes_total",
		Help:      "Total number of liveness probes issued, by peer and outcome.",
	},
	[]string{"service", "status"},
)

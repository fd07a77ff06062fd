package ports

import (
	"context"

	"github.com/hragentic/hr-gateway/internal/core/domain"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ProbeResult is the observed liveness of a single domain peer.
type ProbeResult struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Prober issues one bounded liveness probe against a peer.
type Prober interface {
	Probe(ctx context.Context, entry domain.ServiceEntry) error
}

// HealthService fans out probes to every registered peer and collates the
// outcomes, tolerating partial failure.
type HealthService interface {
	ProbeAll(ctx context.Context) []ProbeResult
}

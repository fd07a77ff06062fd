package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hragentic/hr-gateway/internal/core/domain"
	"github.com/hragentic/hr-gateway/internal/core/ports"
)

const defaultProbeTimeout = 5 * time.Second

// HealthService fans out one liveness probe per registered domain and joins
// every outcome before reporting. A failing or slow peer only costs its own
// timeout; it never aborts or delays the other probes. The last observed
// statuses are cached here, never in the registry, and routing does not
// consult them.
type healthService struct {
	registry     *domain.Registry
	prober       ports.Prober
	probeTimeout time.Duration
	log          zerolog.Logger

	mu       sync.RWMutex
	observed map[string]ports.ProbeResult
}

// NewHealthService returns a HealthService probing every registry entry with
// the given per-probe timeout.
func NewHealthService(registry *domain.Registry, prober ports.Prober, probeTimeout time.Duration, log zerolog.Logger) ports.HealthService {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &healthService{
		registry:     registry,
		prober:       prober,
		probeTimeout: probeTimeout,
		log:          log,
		observed:     make(map[string]ports.ProbeResult),
	}
}

// ProbeAll probes every registered domain concurrently and returns exactly
// one result per domain, in registry order, regardless of completion order.
func (s *healthService) ProbeAll(ctx context.Context) []ports.ProbeResult {
	entries := s.registry.Entries()
	results := make([]ports.ProbeResult, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry domain.ServiceEntry) {
			defer wg.Done()
			results[i] = s.probeOne(ctx, entry)
		}(i, entry)
	}
	wg.Wait()

	s.mu.Lock()
	for _, r := range results {
		s.observed[r.Name] = r
	}
	s.mu.Unlock()

	return results
}

func (s *healthService) probeOne(ctx context.Context, entry domain.ServiceEntry) ports.ProbeResult {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	result := ports.ProbeResult{
		Name:   entry.Name,
		URL:    entry.BaseURL,
		Status: ports.StatusHealthy,
	}

	if err := s.prober.Probe(probeCtx, entry); err != nil {
		result.Status = ports.StatusUnhealthy
		result.Error = err.Error()
		s.log.Warn().Err(err).Str("service", entry.Name).Msg("health probe failed")
	}

	return result
}

// Observed returns the last probe result recorded for a domain, if any.
func (s *healthService) Observed(name string) (ports.ProbeResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.observed[name]
	return r, ok
}

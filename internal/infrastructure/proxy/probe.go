package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hragentic/hr-gateway/internal/core/domain"
)

// HTTPProber checks peer liveness with a GET against the peer's /health
// endpoint. The caller bounds each probe through the context.
type HTTPProber struct {
	client *http.Client
}

func NewHTTPProber() *HTTPProber {
	return &HTTPProber{client: &http.Client{}}
}

func (p *HTTPProber) Probe(ctx context.Context, entry domain.ServiceEntry) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected probe status %d", resp.StatusCode)
	}
	return nil
}

// Package proxy relays authenticated gateway traffic to the HR domain peers.
package proxy

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hragentic/hr-gateway/internal/api/metrics"
	"github.com/hragentic/hr-gateway/internal/core/domain"
)

// hopHeaders are connection-scoped headers that must not cross the proxy.
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

type proxyError struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// Relay forwards requests to the domain peer owning the inbound path prefix.
// The peer's status, body and headers come back unchanged; the gateway never
// asserts identity on the peer's behalf, it forwards Authorization verbatim
// and the peer re-validates.
type Relay struct {
	registry *domain.Registry
	client   *http.Client
	timeout  time.Duration
	log      zerolog.Logger
}

// NewRelay creates a Relay with a per-call timeout covering connect and
// response combined.
func NewRelay(registry *domain.Registry, timeout time.Duration, log zerolog.Logger) *Relay {
	return &Relay{
		registry: registry,
		client: &http.Client{
			// Redirects belong to the caller; relay them as-is.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: timeout,
		log:     log,
	}
}

// Handle relays a single request. Wired as the catch-all handler under every
// registered domain prefix.
func (rl *Relay) Handle(c echo.Context) error {
	req := c.Request()

	entry, ok := rl.registry.Resolve(req.URL.Path)
	if !ok {
		return domain.ErrRouteNotFound
	}

	requestID := requestID(c)
	start := time.Now()

	// Derived from the inbound context so a client disconnect aborts the
	// outbound call as well.
	ctx, cancel := context.WithTimeout(req.Context(), rl.timeout)
	defer cancel()

	// Methods that carry a body are buffered once; the buffer is the only
	// byte stream ever written outbound, and Content-Length comes from it.
	var body io.Reader
	var bodyLen int64 = -1
	if req.Body != nil && req.Method != http.MethodGet && req.Method != http.MethodHead {
		buf, err := io.ReadAll(req.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
		}
		body = bytes.NewReader(buf)
		bodyLen = int64(len(buf))
	}

	outURL := entry.BaseURL + req.URL.EscapedPath()
	if req.URL.RawQuery != "" {
		outURL += "?" + req.URL.RawQuery
	}

	// Headers are fully populated here, before the transport writes any
	// body bytes; body framing depends on that ordering.
	out, err := http.NewRequestWithContext(ctx, req.Method, outURL, body)
	if err != nil {
		return err
	}
	copyHeaders(out.Header, req.Header)
	out.Header.Set(echo.HeaderXRequestID, requestID)
	if bodyLen >= 0 {
		out.ContentLength = bodyLen
	}

	rl.log.Info().
		Str("request_id", requestID).
		Str("service", entry.Name).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("relaying request")

	resp, err := rl.client.Do(out)
	if err != nil {
		metrics.ProxyErrorsTotal.WithLabelValues(entry.Name).Inc()
		rl.log.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("service", entry.Name).
			Msg("domain peer unreachable")
		return c.JSON(http.StatusServiceUnavailable, proxyError{
			Error:   "service unavailable",
			Details: map[string]string{"service": entry.Name},
		})
	}
	defer resp.Body.Close()

	copyHeaders(c.Response().Header(), resp.Header)
	c.Response().WriteHeader(resp.StatusCode)
	_, copyErr := io.Copy(c.Response(), resp.Body)

	metrics.ProxyRequestsTotal.WithLabelValues(entry.Name, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.ProxyRequestDuration.WithLabelValues(entry.Name).Observe(time.Since(start).Seconds())

	rl.log.Info().
		Str("request_id", requestID).
		Str("service", entry.Name).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("relayed response")

	return copyErr
}

// copyHeaders copies src into dst minus hop-by-hop headers. Content-Length is
// excluded as well: the outbound length is derived from the buffered body and
// the inbound one from the peer response the transport decodes.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if isHopHeader(key) || http.CanonicalHeaderKey(key) == "Content-Length" {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}

func isHopHeader(key string) bool {
	key = http.CanonicalHeaderKey(key)
	for _, h := range hopHeaders {
		if key == h {
			return true
		}
	}
	return false
}

// requestID returns the correlation id for this request. The request-id
// middleware has already generated one when the client sent none.
func requestID(c echo.Context) string {
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

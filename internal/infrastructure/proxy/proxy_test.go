package proxy

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hragentic/hr-gateway/internal/core/domain"
)

func singlePeerRegistry(name, baseURL string) *domain.Registry {
	return domain.NewRegistry([]domain.ServiceEntry{
		{Name: name, BaseURL: baseURL, PathPrefix: "/api/" + name},
	})
}

func relayContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRelay_ForwardsRequestFaithfully(t *testing.T) {
	type captured struct {
		method        string
		path          string
		query         string
		authorization string
		requestID     string
		contentType   string
		contentLength int64
		body          string
	}
	var got captured

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = captured{
			method:        r.Method,
			path:          r.URL.Path,
			query:         r.URL.RawQuery,
			authorization: r.Header.Get("Authorization"),
			requestID:     r.Header.Get("X-Request-Id"),
			contentType:   r.Header.Get("Content-Type"),
			contentLength: r.ContentLength,
			body:          string(b),
		}
		w.Header().Set("X-Answer-Source", "leave-agent")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"submitted"}`))
	}))
	defer backend.Close()

	relay := NewRelay(singlePeerRegistry("leave", backend.URL), time.Second, zerolog.Nop())

	payload := `{"start_date":"2026-09-01","days":3}`
	c, rec := relayContext(http.MethodPost, "/api/leave/request?notify=true", strings.NewReader(payload))
	c.Request().Header.Set("Content-Type", "application/json")
	c.Request().Header.Set("Authorization", "Bearer token-123")
	c.Request().Header.Set("X-Request-ID", "req-abc")

	if err := relay.Handle(c); err != nil {
		t.Fatalf("relay error: %v", err)
	}

	if got.method != http.MethodPost {
		t.Fatalf("method not preserved: %s", got.method)
	}
	if got.path != "/api/leave/request" {
		t.Fatalf("path not preserved: %s", got.path)
	}
	if got.query != "notify=true" {
		t.Fatalf("query not preserved: %s", got.query)
	}
	if got.authorization != "Bearer token-123" {
		t.Fatalf("authorization not forwarded verbatim: %q", got.authorization)
	}
	if got.requestID != "req-abc" {
		t.Fatalf("correlation id not propagated: %q", got.requestID)
	}
	if got.contentType != "application/json" {
		t.Fatalf("content type not preserved: %q", got.contentType)
	}
	if got.contentLength != int64(len(payload)) {
		t.Fatalf("content length %d, want %d", got.contentLength, len(payload))
	}
	if got.body != payload {
		t.Fatalf("body corrupted: %q", got.body)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("peer status not relayed: %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"submitted"}` {
		t.Fatalf("peer body not relayed: %q", rec.Body.String())
	}
	if rec.Header().Get("X-Answer-Source") != "leave-agent" {
		t.Fatalf("peer header not relayed")
	}
}

func TestRelay_RelaysPeerStatusUnmodified(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "balance exhausted", http.StatusTeapot)
	}))
	defer backend.Close()

	relay := NewRelay(singlePeerRegistry("leave", backend.URL), time.Second, zerolog.Nop())
	c, rec := relayContext(http.MethodGet, "/api/leave/balance", nil)

	if err := relay.Handle(c); err != nil {
		t.Fatalf("relay error: %v", err)
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected peer status 418 relayed, got %d", rec.Code)
	}
}

func TestRelay_UnreachablePeer(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := backend.URL
	backend.Close() // nothing listens anymore

	relay := NewRelay(singlePeerRegistry("payroll", url), time.Second, zerolog.Nop())
	c, rec := relayContext(http.MethodGet, "/api/payroll/payslip/42", nil)

	if err := relay.Handle(c); err != nil {
		t.Fatalf("relay error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if resp.Error == "" {
		t.Fatalf("expected stable error field")
	}
	if resp.Details["service"] != "payroll" {
		t.Fatalf("envelope must name the failing domain, got %v", resp.Details)
	}
}

func TestRelay_TimeoutBoundsTheCall(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer backend.Close()

	relay := NewRelay(singlePeerRegistry("coordinator", backend.URL), 30*time.Millisecond, zerolog.Nop())
	c, rec := relayContext(http.MethodGet, "/api/coordinator/agents", nil)

	start := time.Now()
	if err := relay.Handle(c); err != nil {
		t.Fatalf("relay error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on timeout, got %d", rec.Code)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout did not bound the call")
	}
}

func TestRelay_StripsHopByHopHeaders(t *testing.T) {
	var connection, keepAlive string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connection = r.Header.Get("Proxy-Connection")
		keepAlive = r.Header.Get("Keep-Alive")
	}))
	defer backend.Close()

	relay := NewRelay(singlePeerRegistry("faq", backend.URL), time.Second, zerolog.Nop())
	c, _ := relayContext(http.MethodGet, "/api/faq/popular", nil)
	c.Request().Header.Set("Proxy-Connection", "keep-alive")
	c.Request().Header.Set("Keep-Alive", "timeout=5")

	if err := relay.Handle(c); err != nil {
		t.Fatalf("relay error: %v", err)
	}
	if connection != "" || keepAlive != "" {
		t.Fatalf("hop-by-hop headers leaked: %q %q", connection, keepAlive)
	}
}

func TestRelay_UnknownPrefix(t *testing.T) {
	relay := NewRelay(singlePeerRegistry("faq", "http://faq:8002"), time.Second, zerolog.Nop())
	c, _ := relayContext(http.MethodGet, "/api/unknown/thing", nil)

	err := relay.Handle(c)
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

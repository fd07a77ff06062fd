package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hragentic/hr-gateway/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if resp.Error == "" {
		t.Fatalf("envelope must carry an error field")
	}
	return rec.Code, resp.Error
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", fmt.Errorf("%w: email is required", domain.ErrValidation), http.StatusBadRequest},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"no token", domain.ErrNoToken, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"route not found", domain.ErrRouteNotFound, http.StatusNotFound},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"service unavailable", domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestErrorHandler_NoTokenAndInvalidTokenDiffer(t *testing.T) {
	noTokenCode, _ := renderError(t, domain.ErrNoToken)
	invalidCode, _ := renderError(t, domain.ErrInvalidToken)

	if noTokenCode != http.StatusUnauthorized {
		t.Fatalf("missing token must be 401, got %d", noTokenCode)
	}
	if invalidCode != http.StatusForbidden {
		t.Fatalf("invalid token must be 403, got %d", invalidCode)
	}
}

func TestErrorHandler_UnexpectedErrorIsSanitized(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection pool exhausted"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, _ := renderError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", code)
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hragentic/hr-gateway/internal/core/domain"
	"github.com/hragentic/hr-gateway/internal/core/ports"
)

type stubAuthService struct {
	validateFn func(token string) (*domain.Claims, error)
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Profile(context.Context, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) UpdateProfile(context.Context, string, domain.ProfileUpdate) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Validate(token string) (*domain.Claims, error) {
	return s.validateFn(token)
}

func newAuthContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payroll/query", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestAuth_ValidToken(t *testing.T) {
	want := &domain.Claims{UserID: "1", EmployeeID: "EMP000042", Email: "alice@example.com", Role: "employee"}
	stub := &stubAuthService{validateFn: func(token string) (*domain.Claims, error) {
		if token != "good-token" {
			t.Fatalf("unexpected token %q", token)
		}
		return want, nil
	}}

	c := newAuthContext(t, "Bearer good-token")
	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		claims, ok := c.Get(ClaimsKey).(*domain.Claims)
		if !ok || claims.EmployeeID != "EMP000042" {
			t.Fatalf("claims not attached: %v", c.Get(ClaimsKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	stub := &stubAuthService{validateFn: func(string) (*domain.Claims, error) {
		t.Fatalf("validate should not be called")
		return nil, nil
	}}

	c := newAuthContext(t, "")
	err := Auth(stub)(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestAuth_MalformedScheme(t *testing.T) {
	stub := &stubAuthService{validateFn: func(string) (*domain.Claims, error) {
		t.Fatalf("validate should not be called")
		return nil, nil
	}}

	c := newAuthContext(t, "Token abc")
	err := Auth(stub)(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	stub := &stubAuthService{validateFn: func(string) (*domain.Claims, error) {
		return nil, domain.ErrInvalidToken
	}}

	c := newAuthContext(t, "Bearer expired-or-forged")
	err := Auth(stub)(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hragentic/hr-gateway/internal/core/domain"
	"github.com/hragentic/hr-gateway/internal/core/ports"
)

// ClaimsKey is the echo context key the validated claims are stored under.
const ClaimsKey = "claims"

// Auth gates protected routes. A missing token is 401, a present but invalid
// or expired token is 403, and a valid token attaches its claims to the
// request context.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return domain.ErrNoToken
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrInvalidToken
			}

			claims, err := auth.Validate(parts[1])
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

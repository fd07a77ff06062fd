package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hragentic/hr-gateway/internal/api/middleware"
	"github.com/hragentic/hr-gateway/internal/core/domain"
)

// ctxClaims extracts the claims attached by the Auth middleware. A handler
// behind the guard always has them; their absence means the route was wired
// without the middleware, which is rejected rather than masked.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if !ok || claims == nil {
		return nil, domain.ErrNoToken
	}
	return claims, nil
}

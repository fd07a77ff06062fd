package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hragentic/hr-gateway/internal/api/metrics"
	"github.com/hragentic/hr-gateway/internal/core/domain"
	"github.com/hragentic/hr-gateway/internal/core/ports"
)

// HealthHandler serves the gateway liveness endpoint and the fleet-wide
// health aggregation.
type HealthHandler struct {
	registry      *domain.Registry
	healthService ports.HealthService
}

func NewHealthHandler(registry *domain.Registry, healthService ports.HealthService) *HealthHandler {
	return &HealthHandler{registry: registry, healthService: healthService}
}

type livenessResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Services  []string `json:"services"`
}

type servicesResponse struct {
	Gateway  string             `json:"gateway"`
	Services []ports.ProbeResult `json:"services"`
}

// Liveness reports gateway liveness and the configured domain names. It never
// touches the peers.
//
// @Summary      Gateway liveness
// @Tags         health
// @Produce      json
// @Success      200  {object}  livenessResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{
		Status:    "healthy",
		Service:   "hr-gateway",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  h.registry.Names(),
	})
}

// Services probes every registered domain concurrently and reports one entry
// per domain regardless of individual failures.
//
// @Summary      Aggregated peer health
// @Tags         health
// @Produce      json
// @Success      200  {object}  servicesResponse
// @Router       /health/services [get]
func (h *HealthHandler) Services(c echo.Context) error {
	results := h.healthService.ProbeAll(c.Request().Context())
	for _, r := range results {
		metrics.HealthProbesTotal.WithLabelValues(r.Name, r.Status).Inc()
	}

	return c.JSON(http.StatusOK, servicesResponse{
		Gateway:  "healthy",
		Services: results,
	})
}

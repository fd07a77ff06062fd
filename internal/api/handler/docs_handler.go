package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DocsHandler serves the static capability manifest describing the gateway
// surface and the domain peers behind it.
type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

type serviceDoc struct {
	URL         string            `json:"url"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

type docsResponse struct {
	Name        string                `json:"name"`
	Version     string                `json:"version"`
	Description string                `json:"description"`
	Services    map[string]serviceDoc `json:"services"`
}

// Manifest returns the capability manifest.
//
// @Summary      Capability manifest
// @Tags         docs
// @Produce      json
// @Success      200  {object}  docsResponse
// @Router       /api/docs [get]
func (h *DocsHandler) Manifest(c echo.Context) error {
	return c.JSON(http.StatusOK, docsResponse{
		Name:        "HR Microservices API Gateway",
		Version:     "1.0.0",
		Description: "Central API gateway for the HR assistant platform",
		Services: map[string]serviceDoc{
			"auth": {
				URL:         "/api/auth",
				Description: "Authentication and user management",
				Endpoints: map[string]string{
					"register": "POST /api/auth/register",
					"login":    "POST /api/auth/login",
					"profile":  "GET /api/auth/profile",
				},
			},
			"coordinator": {
				URL:         "/api/coordinator",
				Description: "Intelligent query routing to the appropriate agent",
				Endpoints: map[string]string{
					"ask":    "POST /api/coordinator/ask",
					"agents": "GET /api/coordinator/agents",
				},
			},
			"faq": {
				URL:         "/api/faq",
				Description: "General HR questions and answers",
				Endpoints: map[string]string{
					"ask":     "POST /api/faq/ask",
					"popular": "GET /api/faq/popular",
				},
			},
			"payroll": {
				URL:         "/api/payroll",
				Description: "Salary and compensation queries",
				Endpoints: map[string]string{
					"query":   "POST /api/payroll/query",
					"payslip": "GET /api/payroll/payslip/:id",
				},
			},
			"leave": {
				URL:         "/api/leave",
				Description: "Leave management and requests",
				Endpoints: map[string]string{
					"query":   "POST /api/leave/query",
					"request": "POST /api/leave/request",
					"balance": "GET /api/leave/balance",
				},
			},
			"recruitment": {
				URL:         "/api/recruitment",
				Description: "Job openings and recruitment",
				Endpoints: map[string]string{
					"query":    "POST /api/recruitment/query",
					"openings": "GET /api/recruitment/openings",
				},
			},
			"performance": {
				URL:         "/api/performance",
				Description: "Performance management and goals",
				Endpoints: map[string]string{
					"query": "POST /api/performance/query",
					"goals": "GET /api/performance/goals",
				},
			},
		},
	})
}

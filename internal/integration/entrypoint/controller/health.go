package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	checks map[string]HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  string            `json:"timestamp"`
}

// NewHealthController creates a new health controller checking the named dependencies.
func NewHealthController(checks map[string]HealthChecker) *HealthController {
	return &HealthController{
		checks: checks,
	}
}

// Check handles GET /health requests.
// Any failing dependency turns the status to "degraded" with a 503.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:     "ok",
		Components: make(map[string]string, len(h.checks)),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			response.Components[name] = "unavailable"
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Components[name] = "ok"
	}

	c.JSON(status, response)
}

// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/residence-hub/backend/internal/application/adapter"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthCheck
	redis    HealthCheck
	clock    adapter.Clock
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil redis check reports redis as disabled.
func NewHealthController(database, redis HealthCheck, clock adapter.Clock) *HealthController {
	return &HealthController{
		database: database,
		redis:    redis,
		clock:    clock,
	}
}

// Check handles GET /health requests.
// The API is degraded, and answers 503, when the database is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Redis:     "disabled",
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	}

	if h.database != nil && h.database(ctx) == nil {
		response.Database = "connected"
	}
	if h.redis != nil {
		response.Redis = "connected"
		if err := h.redis(ctx); err != nil {
			response.Redis = "disconnected"
		}
	}

	status := http.StatusOK
	if response.Database != "connected" {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, response)
}

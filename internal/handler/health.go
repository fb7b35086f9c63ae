package handler

import (
	"net/http"
	"time"

	"book-deconstructor/internal/deconstruct"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Gateway   deconstruct.Mode `json:"gateway"`
	Sessions  int              `json:"sessions"`
}

// HandleHealth returns the health status of the service
// Used for Cloud Run liveness probe
func (h *Handler) HandleHealth(c *gin.Context) {
	status := "healthy"
	if h.gatewayMode == deconstruct.ModeUnavailable {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Gateway:   h.gatewayMode,
		Sessions:  h.registry.Len(),
	})
}

// HandleReadiness returns whether the service is ready to accept traffic
// Used for Cloud Run startup probe - stricter than health
func (h *Handler) HandleReadiness(c *gin.Context) {
	if h.gatewayMode == deconstruct.ModeUnavailable {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "gateway_not_configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

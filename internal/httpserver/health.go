package httpserver

import (
	"github.com/gin-gonic/gin"

	"task-description-updater/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "task-description-updater"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the updater is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Updater is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once the ClickUp hierarchy is resolved.
// @Summary Readiness Check
// @Description Ready once the dispatch list has been resolved
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Updater is ready"
// @Failure 503 {object} response.Resp "Hierarchy not resolved yet"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.statusSource() == nil {
		response.ServiceUnavailable(c, gin.H{
			"status":  "resolving",
			"service": ServiceName,
		})
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the updater is alive
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Updater is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

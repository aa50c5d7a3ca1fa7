// Package handlers provides HTTP request handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"knkadmin/internal/metadata"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// SessionCounter reports the number of open form sessions.
type SessionCounter interface {
	Len() int
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	registry *metadata.Registry
	sessions SessionCounter
	checks   map[string]ReadinessCheck
}

// NewHealthHandler creates a new health handler. checks are run by Ready, keyed by name.
func NewHealthHandler(registry *metadata.Registry, sessions SessionCounter, checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{registry: registry, sessions: sessions, checks: checks}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	results := map[string]string{}
	healthy := true
	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			results[name] = "unhealthy: " + err.Error()
			healthy = false
			continue
		}
		results[name] = "healthy"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": results,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": results,
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	info := gin.H{
		"app":      "knkadmin",
		"version":  "0.1.0",
		"entities": len(h.registry.List()),
	}
	if h.sessions != nil {
		info["form_sessions"] = h.sessions.Len()
	}
	c.JSON(http.StatusOK, info)
}

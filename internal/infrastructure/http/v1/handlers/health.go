// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockroom/internal/domain/audit"
	"stockroom/internal/domain/inventory"
)

// Version is reported by the info endpoint.
const Version = "0.1.0"

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	service *inventory.Service
	journal *audit.Journal
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service *inventory.Service, journal *audit.Journal) *HealthHandler {
	return &HealthHandler{
		service: service,
		journal: journal,
		started: time.Now(),
	}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	auditEntries := 0
	if h.journal != nil {
		auditEntries = h.journal.Len()
	}

	c.JSON(http.StatusOK, gin.H{
		"app":     "stockroom",
		"version": Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"inventory": map[string]any{
			"items":         h.service.Count(),
			"audit_entries": auditEntries,
		},
	})
}

package api

import (
	"net/http"
	"time"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
)

// HealthReporter exposes cached service health.
type HealthReporter interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	health HealthReporter
}

func NewHealthHandler(h HealthReporter) *HealthHandler { return &HealthHandler{health: h} }

// CheckHealth handles GET /api/health. Unhealthy services answer 503.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "unhealthy", http.StatusServiceUnavailable
	if h.health.IsHealthy() {
		status, code = "healthy", http.StatusOK
	}
	respond.WriteJSON(w, code, map[string]interface{}{
		"status":     status,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"components": h.health.Components(),
	})
}

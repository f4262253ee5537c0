package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/hapkiduki/sgp-engine/internal/application/dto"
	"github.com/hapkiduki/sgp-engine/internal/application/port"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version string
	started time.Time
	checks  map[string]port.HealthChecker
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. Every checker is pinged by /ready.
func NewHealthHandler(version string, started time.Time, checks map[string]port.HealthChecker) *HealthHandler {
	return &HealthHandler{
		version: version,
		started: started,
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Health reports that the process is up.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, dto.HealthResponse{
		Status:  statusHealthy,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready pings every dependency and answers 503 if any of them fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:  statusHealthy,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checks:  make(map[string]dto.HealthCheckResult, len(h.checks)),
	}

	for name, checker := range h.checks {
		start := time.Now()
		result := dto.HealthCheckResult{Status: statusHealthy}

		if err := checker.Ping(ctx); err != nil {
			result.Status = statusUnhealthy
			result.Message = err.Error()
			resp.Status = statusUnhealthy
		}
		result.ResponseTime = time.Since(start).Milliseconds()

		resp.Checks[name] = result
	}

	if resp.Status != statusHealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, resp)
}

package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks one dependency's connectivity.
type Pinger func(ctx context.Context) error

// HealthHandler serves the health-check endpoint, reporting per-dependency
// status for whatever backends are wired in.
type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler creates a HealthHandler. deps maps a dependency name
// ("redis", "postgres") to its ping; pass nil when nothing is wired.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HealthCheck responds with overall and per-dependency status. A failing
// dependency degrades the status but still returns 200; orchestrators that
// want hard failures can inspect the body.
// GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	deps := make(map[string]string, len(h.deps))
	for name, ping := range h.deps {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			status = "degraded"
		} else {
			deps[name] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       status,
		"dependencies": deps,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

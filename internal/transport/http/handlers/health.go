package http_handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/skillmarket/internal/transport/http/response"
)

// Check is one readiness dependency. Required checks fail /readyz;
// optional ones are reported but do not.
type Check struct {
	Name     string
	Ping     func(ctx context.Context) error
	Required bool
}

type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			deps[c.Name] = "unavailable"
			if c.Required {
				status = http.StatusServiceUnavailable
			}
			continue
		}
		deps[c.Name] = "ok"
	}

	body := map[string]any{"status": "ready", "checks": deps}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	response.WriteJSON(w, status, body)
}

package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Check probes one dependency.  A nil Check marks the dependency as
// disabled.
type Check func(ctx context.Context) error

// HealthHandler reports whether the service and its backing stores are
// reachable.  It is used by load balancers and the compose healthcheck.
type HealthHandler struct {
	checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles GET /healthz.  It answers 200 when every enabled check
// passes and 503 otherwise, listing each dependency as up, down or
// disabled.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		switch {
		case check == nil:
			deps[name] = "disabled"
		case check(ctx) != nil:
			deps[name] = "down"
			status = http.StatusServiceUnavailable
		default:
			deps[name] = "up"
		}
	}
	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	return c.JSON(status, echo.Map{"status": state, "dependencies": deps})
}

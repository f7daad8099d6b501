package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	version  string
	required map[string]HealthChecker
	optional map[string]HealthChecker
}

// NewHealthHandler builds the /health handler. A failing required check
// turns the response into 503; optional ones only show as "disconnected".
func NewHealthHandler(version string, required, optional map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{version: version, required: required, optional: optional}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, checker := range h.required {
		if err := checker.HealthCheck(ctx); err != nil {
			services[name] = "disconnected"
			status = "unavailable"
			continue
		}
		services[name] = "connected"
	}
	for name, checker := range h.optional {
		if checker == nil {
			services[name] = "disabled"
			continue
		}
		if err := checker.HealthCheck(ctx); err != nil {
			services[name] = "disconnected"
			if status == "ok" {
				status = "degraded"
			}
			continue
		}
		services[name] = "connected"
	}

	code := fiber.StatusOK
	if status == "unavailable" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  h.version,
		"services": services,
	})
}

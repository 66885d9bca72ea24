package handler

import (
	"context"
	"time"

	"ayunova/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck reports the status of one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	report := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			report[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		report[name] = "ok"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "unhealthy", report)
	}
	return response.Success(c, status, response.MessageOK, report)
}

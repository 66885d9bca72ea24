package v1

import (
	"ayunova/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterDashboard(r fiber.Router, dashboardHandler *handler.DashboardHandler) {
	if r == nil {
		return
	}
	if dashboardHandler == nil {
		return
	}

	dashboardHandler.RegisterRoutes(r)
}

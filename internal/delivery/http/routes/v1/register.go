package v1

import (
	"ayunova/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	SignOut   *handler.SignOutHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
}

// Register mounts the v1 API. requireSession guards the routes that need a
// signed-in user; the dashboard and sign-out accept anonymous callers.
func Register(r fiber.Router, h Handlers, requireSession fiber.Handler) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	if h.Auth != nil {
		h.Auth.RegisterRoutes(authGroup)
	}
	if h.SignOut != nil {
		h.SignOut.RegisterRoutes(authGroup)
	}

	RegisterDashboard(r, h.Dashboard)
	RegisterUsers(r.Group("/users", requireSession), h.User)
}

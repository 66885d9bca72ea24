package routes

import (
	"ayunova/internal/delivery/http/handler"
	"ayunova/internal/delivery/http/middleware"
	v1 "ayunova/internal/delivery/http/routes/v1"
	"ayunova/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	pages    *handler.PageHandler
	stream   *ws.Handler
	api      v1.Handlers
	sessions *middleware.SessionMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	pages *handler.PageHandler,
	stream *ws.Handler,
	api v1.Handlers,
	sessions *middleware.SessionMiddleware,
) *Registry {
	return &Registry{health: health, pages: pages, stream: stream, api: api, sessions: sessions}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerStream(app)

	// Everything below sees the caller's session, anonymous or not.
	app.Use(r.sessions.Optional())
	r.registerPages(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerStream(app *fiber.App) {
	if r.stream != nil {
		app.Get("/ws/dashboard", r.stream.HandleDashboardWS)
	}
}

func (r *Registry) registerPages(app *fiber.App) {
	if r.pages != nil {
		r.pages.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.api, r.sessions.Require())
}

package app

import (
	"context"
	"fmt"
	"strings"

	"ayunova/internal/delivery/http/handler"
	"ayunova/internal/delivery/http/middleware"
	"ayunova/internal/delivery/http/routes"
	v1 "ayunova/internal/delivery/http/routes/v1"
	"ayunova/internal/ws"

	"github.com/gofiber/fiber/v3"
)

const streamPath = "/ws/dashboard"

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("nil container")
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cookie := handler.SessionCookie{
		Name:   c.Config.Dashboard.SessionCookieName,
		Secure: c.Config.App.IsProduction(),
		MaxAge: c.Config.JWT.AccessExpiresIn,
	}

	checks := map[string]handler.HealthCheck{}
	if c.DB != nil {
		checks["database"] = c.DB.Ping
	}
	if c.Cache != nil {
		checks["redis"] = func(ctx context.Context) error {
			if !c.Cache.Available() {
				return nil
			}
			return c.Cache.Ping(ctx)
		}
	}

	sessions := middleware.NewSessionMiddleware(c.Sessions, cookie.Name, c.Logger.Named("session"))

	registry := routes.NewRegistry(
		handler.NewHealthHandler(checks),
		handler.NewPageHandler(c.Config.App.AppName, c.Dashboard, c.SignOut, cookie, streamPath),
		ws.NewHandler(c.Hub, c.Dashboard, c.Sessions, cookie.Name, c.Logger.Named("ws")),
		v1.Handlers{
			Auth:      handler.NewAuthHandler(c.Auth, cookie),
			SignOut:   handler.NewSignOutHandler(c.SignOut, cookie),
			Dashboard: handler.NewDashboardHandler(c.Dashboard),
			User:      handler.NewUserHandler(c.User),
		},
		sessions,
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

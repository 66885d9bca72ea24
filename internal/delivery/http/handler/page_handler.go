package handler

import (
	"ayunova/internal/delivery/http/middleware"
	"ayunova/internal/delivery/http/view"
	"ayunova/internal/pkg/response"
	"ayunova/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// PageHandler serves the server-rendered dashboard and its htmx actions.
type PageHandler struct {
	title     string
	dashboard usecase.DashboardUsecase
	signOut   usecase.SignOutUsecase
	cookie    SessionCookie
	streamURL string
}

func NewPageHandler(title string, dash usecase.DashboardUsecase, signOut usecase.SignOutUsecase, cookie SessionCookie, streamURL string) *PageHandler {
	return &PageHandler{title: title, dashboard: dash, signOut: signOut, cookie: cookie, streamURL: streamURL}
}

func (h *PageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/dashboard", h.Dashboard)
	r.Post("/signout", h.SignOut)
}

func (h *PageHandler) Dashboard(c fiber.Ctx) error {
	v := h.dashboard.View(c.Context(), middleware.SessionFrom(c))
	return response.HTML(c, fiber.StatusOK, view.DashboardPage(h.title, v, h.streamURL))
}

// SignOut answers an htmx request with a toast fragment. It stays on the
// page whatever the outcome.
func (h *PageHandler) SignOut(c fiber.Ctx) error {
	n, err := h.signOut.SignOut(c.Context(), middleware.SessionFrom(c))
	if err == nil {
		h.cookie.clear(c)
	}
	return response.HTML(c, fiber.StatusOK, view.Toast(n))
}


package handler

import (
	"ayunova/internal/delivery/http/dto"
	"ayunova/internal/delivery/http/middleware"
	"ayunova/internal/pkg/response"
	"ayunova/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/dashboard", h.Get)
}

// Get renders the dashboard for the caller. Anonymous callers get the
// loading view.
func (h *DashboardHandler) Get(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	v := h.uc.View(c.Context(), s)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DashboardResponse{
		Authenticated: s.Authenticated(),
		View:          v,
	})
}

package handler

import (
	"ayunova/internal/delivery/http/dto"
	"ayunova/internal/delivery/http/middleware"
	"ayunova/internal/pkg/response"
	"ayunova/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SignOutHandler struct {
	uc     usecase.SignOutUsecase
	cookie SessionCookie
}

func NewSignOutHandler(uc usecase.SignOutUsecase, cookie SessionCookie) *SignOutHandler {
	return &SignOutHandler{uc: uc, cookie: cookie}
}

func (h *SignOutHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/signout", h.SignOut)
}

// SignOut responds with the notification either way; the status tells
// success from failure. Failures carry the failure notification through the
// error middleware.
func (h *SignOutHandler) SignOut(c fiber.Ctx) error {
	n, err := h.uc.SignOut(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return err
	}

	h.cookie.clear(c)
	return response.Success(c, fiber.StatusOK, n.Title, dto.SignOutResponse{Notification: n})
}

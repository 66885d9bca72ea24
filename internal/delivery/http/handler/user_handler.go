package handler

import (
	"ayunova/internal/delivery/http/dto"
	"ayunova/internal/delivery/http/middleware"
	"ayunova/internal/pkg/response"
	"ayunova/internal/session"
	"ayunova/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	if !s.Authenticated() {
		return session.ErrNoSession
	}

	me, err := h.uc.GetMe(c.Context(), s.UserID())
	if err != nil {
		return err
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMeResponse(me))
}

package routes

import (
	v1 "ayunova/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h v1.Handlers, requireSession fiber.Handler) {
	if r == nil {
		return
	}

	v1.Register(r, h, requireSession)
}

package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// SessionCookie describes the browser cookie carrying the access token.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func (sc SessionCookie) set(c fiber.Ctx, token string) {
	if sc.Name == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sc.MaxAge.Seconds()),
		Secure:   sc.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (sc SessionCookie) clear(c fiber.Ctx) {
	if sc.Name == "" {
		return
	}
	c.ClearCookie(sc.Name)
}

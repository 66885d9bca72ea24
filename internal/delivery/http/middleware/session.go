package middleware

import (
	"context"
	"strings"

	"ayunova/internal/session"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const CtxSessionKey = "session"

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Session, error)
}

// SessionMiddleware resolves the caller's session from a bearer token or the
// session cookie and stores it in c.Locals.
type SessionMiddleware struct {
	resolver   SessionResolver
	cookieName string
	logger     *zap.Logger
}

func NewSessionMiddleware(resolver SessionResolver, cookieName string, logger *zap.Logger) *SessionMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionMiddleware{resolver: resolver, cookieName: cookieName, logger: logger}
}

// Optional lets anonymous callers through with an anonymous session.
func (m *SessionMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		s, err := m.resolver.Resolve(c.Context(), TokenFromRequest(c, m.cookieName))
		if err != nil {
			m.logger.Debug("session rejected", zap.Error(err))
		}
		c.Locals(CtxSessionKey, s)
		return c.Next()
	}
}

// Require rejects callers without a valid session.
func (m *SessionMiddleware) Require() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := TokenFromRequest(c, m.cookieName)
		if token == "" {
			return session.ErrNoSession
		}

		s, err := m.resolver.Resolve(c.Context(), token)
		if err != nil {
			if _, _, _, ok := domainError(err); ok {
				return err
			}
			return NewAppError(fiber.StatusServiceUnavailable, "Session check unavailable", nil, err)
		}
		if !s.Authenticated() {
			return session.ErrNoSession
		}

		c.Locals(CtxSessionKey, s)
		return c.Next()
	}
}

// SessionFrom returns the session stored by the middleware, or an anonymous
// one.
func SessionFrom(c fiber.Ctx) session.Session {
	if s, ok := c.Locals(CtxSessionKey).(session.Session); ok {
		return s
	}
	return session.Anonymous()
}

// TokenFromRequest prefers the Authorization header over the cookie.
func TokenFromRequest(c fiber.Ctx, cookieName string) string {
	if tok, ok := bearerTokenFromHeader(c.Get("Authorization")); ok {
		return tok
	}
	if cookieName == "" {
		return ""
	}
	return strings.TrimSpace(c.Cookies(cookieName))
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

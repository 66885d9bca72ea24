package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ayunova/internal/domain/dashboard"
	"ayunova/internal/session"
	"ayunova/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Session, error)
}

// Handler serves the live dashboard stream. Each connection runs its own
// profile loader and follows identity changes, whether sent as auth frames
// or caused by a sign-out elsewhere. Connections asking for format=html get
// rendered fragments instead of JSON frames.
type Handler struct {
	hub        *Hub
	dashboard  usecase.DashboardUsecase
	sessions   SessionResolver
	cookieName string
	logger     *zap.Logger
}

func NewHandler(hub *Hub, dash usecase.DashboardUsecase, sessions SessionResolver, cookieName string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, dashboard: dash, sessions: sessions, cookieName: cookieName, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) HandleDashboardWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	return adaptor.HTTPHandlerFunc(h.ServeHTTP)(c)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Resolve(r.Context(), h.tokenFromRequest(r))
	if err != nil {
		h.logger.Debug("ws session rejected, continuing anonymous", zap.Error(err))
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade error", zap.Error(err))
		return
	}

	encode := encoderFor(r)
	identities := make(chan session.Session, 1)
	client := NewClient(h.hub, conn, h.logger)
	client.identities = identities
	h.hub.Register(client, s.UserID())

	ctx, cancel := context.WithCancel(context.Background())

	go client.WritePump()
	go func() {
		err := h.dashboard.Stream(ctx, s, identities, func(v dashboard.View) error {
			b, err := encode(v)
			if err != nil {
				return err
			}
			return client.SendWait(ctx, b)
		})
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, websocket.ErrCloseSent) {
			h.logger.Warn("dashboard stream ended", zap.Error(err))
		}
	}()
	go func() {
		defer cancel()
		client.ReadPump(func(msg []byte) {
			var in inboundFrame
			if err := json.Unmarshal(msg, &in); err != nil || in.Type != FrameAuth {
				return
			}
			next, err := h.sessions.Resolve(ctx, in.Token)
			if err != nil {
				h.logger.Debug("ws auth frame rejected", zap.Error(err))
			}
			h.hub.Register(client, next.UserID())
			client.follow(next)
		})
	}()
}

// offerLatest replaces any identity not yet consumed with s.
func offerLatest(ch chan session.Session, s session.Session) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (h *Handler) tokenFromRequest(r *http.Request) string {
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if tok := strings.TrimSpace(r.URL.Query().Get("token")); tok != "" {
		return tok
	}
	if h.cookieName != "" {
		if ck, err := r.Cookie(h.cookieName); err == nil {
			return ck.Value
		}
	}
	return ""
}

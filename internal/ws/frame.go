package ws

import (
	"bytes"
	"encoding/json"
	"net/http"

	"ayunova/internal/delivery/http/view"
	"ayunova/internal/domain/dashboard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	FrameDashboard = "dashboard"
	FrameAuth      = "auth"
)

// FormatHTML selects rendered #dashboard fragments for the htmx ws
// extension instead of JSON frames.
const FormatHTML = view.StreamFormatHTML

// Frame is the envelope of every server-sent JSON message.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type inboundFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

func encodeFrame(typ string, data any) ([]byte, error) {
	return json.Marshal(Frame{Type: typ, Data: data})
}

// viewEncoder turns a dashboard view into one websocket message.
type viewEncoder func(dashboard.View) ([]byte, error)

func jsonView(v dashboard.View) ([]byte, error) {
	return encodeFrame(FrameDashboard, v)
}

// htmlView renders v with #dashboard as its root, which the ws extension
// swaps out of band by id.
func htmlView(v dashboard.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := view.DashboardContent(v).Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encoderFor(r *http.Request) viewEncoder {
	if r.URL.Query().Get("format") == FormatHTML {
		return htmlView
	}
	return jsonView
}

// SignedOut moves every connection of userID to the anonymous identity so
// their dashboards follow the ended session.
func (h *Hub) SignedOut(userID uuid.UUID) {
	if h == nil || userID == uuid.Nil {
		return
	}
	select {
	case h.ended <- userID:
	case <-h.done:
	default:
		h.logger.Warn("ws session end dropped", zap.String("reason", "buffer_full"))
	}
}

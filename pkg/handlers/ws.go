package handlers

import (
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/pinframe-inc/pinframe-engine/pkg/realtime"
)

// WebSocketHandler upgrades realtime connections and hands them to the hub.
type WebSocketHandler struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(hub *realtime.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// RegisterRoutes registers the WebSocket endpoint on the given mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws", h.Connect)
}

// Connect handles GET /ws. The connection then speaks the join/leave
// protocol: it receives events only for projects it explicitly joins.
func (h *WebSocketHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// No origin restriction; any browser may subscribe.
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Serve(r.Context(), conn)
}

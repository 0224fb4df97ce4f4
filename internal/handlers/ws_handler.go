package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/insyd-labs/notification-service/internal/realtime"
	"github.com/labstack/echo/v4"
)

// WSHandler upgrades persistent connections and feeds them into the
// live delivery hub.
type WSHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	buffer   int
}

// NewWSHandler creates a new WSHandler. buffer sizes each session's
// outbound queue.
func NewWSHandler(hub *realtime.Hub, buffer int) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Authorization of subscriptions is out of scope; any origin
			// may connect and subscribe as any user.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		buffer: buffer,
	}
}

// RegisterWSRoutes registers the websocket endpoint
func (h *WSHandler) RegisterWSRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve upgrades the connection and runs the session pumps. The client
// subscribes by sending {"action":"subscribe","user_id":N}; it is
// removed from its group automatically on disconnect.
func (h *WSHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return err
	}

	client := realtime.NewClient(h.hub, conn, h.buffer)
	go client.WritePump()
	client.ReadPump()
	return nil
}

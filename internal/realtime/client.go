package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// subscribeFrame is the only inbound frame clients send:
// {"action":"subscribe","user_id":42}
type subscribeFrame struct {
	Action string `json:"action"`
	UserID uint   `json:"user_id"`
}

// Client is one websocket session. Outbound messages go through a
// buffered queue drained by WritePump so a slow socket never blocks the
// dispatcher.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan Message
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient wraps an upgraded websocket connection.
func NewClient(hub *Hub, conn *websocket.Conn, buffer int) *Client {
	if buffer <= 0 {
		buffer = 16
	}
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan Message, buffer),
		done: make(chan struct{}),
	}
}

// enqueue offers a message to the session without blocking. Reports
// whether the message was accepted. The send channel is never closed;
// a finished session is signalled through done so a concurrent Publish
// can never panic on a closed channel.
func (c *Client) enqueue(msg Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close stops WritePump.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// ReadPump consumes subscribe frames until the connection drops, then
// unregisters the client. Runs on the handler goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame subscribeFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read error: %v", err)
			}
			return
		}
		if frame.Action == "subscribe" && frame.UserID != 0 {
			c.hub.Subscribe(c, frame.UserID)
		}
	}
}

// WritePump drains the outbound queue onto the socket and keeps the
// connection alive with pings. Runs on its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

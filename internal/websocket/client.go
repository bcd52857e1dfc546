package websocket

import (
	"context"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	WriteWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	PingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is a middleman between one websocket connection and the hub. The
// hub pushes session events into Send; the stream handler owns the single
// writer goroutine for the connection.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	UserID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{Hub: hub, Conn: conn, UserID: userID, Send: make(chan []byte, 256)}
}

func (c *Client) Register() {
	c.Hub.register <- c
}

// KeepAlive discards inbound frames (the stream is push-only) and tears the
// client down when the peer goes away. Runs in the handler goroutine.
func (c *Client) KeepAlive(ctx context.Context, cancel context.CancelFunc) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
		cancel()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// internal/realtime/websocket.go
package realtime

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketConn wraps websocket.Conn so hub.go does not depend on it.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

// ServeNotices streams the notices of userID until the socket closes. Incoming
// frames are read only to detect the close.
func ServeNotices(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   NewWebSocketConn(c),
		Send:   make(chan []byte, 64),
	}

	hub.RegisterClient(client)
	defer hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[WS] write to %s: %v", userID, err)
				return
			}
		}
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Printf("[WS] user %s disconnected: %v", userID, err)
			return
		}
	}
}

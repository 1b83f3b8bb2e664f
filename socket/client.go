package socket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from a separate origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one connected dashboard session. It exists only for the lifetime
// of its websocket connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// joinMessage is the inbound room-join request.
type joinMessage struct {
	Action      string `json:"action"`
	TableNumber string `json:"tableNumber,omitempty"`
}

// ServeWS upgrades the request and registers the session with the hub.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("socket: upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	hub.register(client)
	log.Printf("socket: client %s connected", client.id)

	go client.writePump()
	go client.readPump()
}

// readPump handles inbound join requests until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
		log.Printf("socket: client %s disconnected", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("socket: client %s read error: %v", c.id, err)
			}
			return
		}

		var msg joinMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("socket: client %s sent malformed message", c.id)
			continue
		}

		switch msg.Action {
		case "joinKitchen":
			c.hub.Join(c, RoomKitchen)
		case "joinAdmin":
			c.hub.Join(c, RoomAdmin)
		case "joinCustomer":
			if msg.TableNumber != "" {
				c.hub.Join(c, TableRoom(msg.TableNumber))
			}
		default:
			log.Printf("socket: client %s sent unknown action %q", c.id, msg.Action)
		}
	}
}

// writePump forwards broadcast payloads to the connection and keeps it alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/util"
)

const (
	// Max wait time when writing a message to the peer
	writeWait = 10 * time.Second

	// Max time till the next pong from the peer
	pongWait = 60 * time.Second

	// Send ping interval, must be less than pong wait time
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the peer
	maxMessageSize = 10000
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Client is one websocket session of one user.
type Client struct {
	id   uuid.UUID
	user *auth.User
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

func newClient(conn *websocket.Conn, hub *Hub, user *auth.User) *Client {
	return &Client{
		id:   uuid.New(),
		user: user,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

// inboundMessage is what a connected client sends over the socket.
type inboundMessage struct {
	Receiver uint   `json:"receiver"`
	Content  string `json:"content"`
}

// ServeWs upgrades a request to a websocket chat session. Browsers cannot
// set headers on websocket requests, so the token rides in the query
// string instead of the Authorization header.
func ServeWs(hub *Hub, mid *auth.Middleware) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			util.WriteError(w, http.StatusUnauthorized, "missing token")
			return
		}
		user, err := mid.ParseToken(token)
		if err != nil {
			util.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "err", err)
			return
		}

		// The registration must be accepted by the hub before the pumps
		// can observe a dead connection, otherwise an immediate disconnect
		// unregisters a client the hub does not know yet and the late
		// registration leaks it.
		client := newClient(conn, hub, user)
		hub.register <- client
		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) disconnect() {
	c.hub.unregister <- c
}

func (c *Client) readPump() {
	defer func() {
		c.disconnect()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("unexpected close error", "err", err)
			}
			break
		}
		c.handleMessage(raw)
	}
}

// handleMessage persists an inbound message and hands it to the hub for
// live delivery to the receiver.
func (c *Client) handleMessage(raw []byte) {
	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		slog.Error("could not decode chat message", "user", c.user.ID, "err", err)
		return
	}
	if in.Receiver == 0 || strings.TrimSpace(in.Content) == "" {
		return
	}

	msg, err := util.SaveMessage(util.GetDb(), c.user.ID, in.Receiver, in.Content)
	if err != nil {
		slog.Error("could not save chat message", "user", c.user.ID, "err", err)
		return
	}
	c.hub.Forward(msg)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// the hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

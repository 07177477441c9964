// Package chat is the real-time direct-message transport: a websocket hub
// that tracks which users are online and pushes stored messages to the
// receiver's live connections.
package chat

import (
	"encoding/json"
	"log/slog"

	"github.com/placemate/placemate/models"
)

// Hub owns the presence registry. A user is online while at least one of
// their connections is registered; the registry is only touched from Run's
// goroutine, never from handlers.
type Hub struct {
	clients    map[*Client]bool
	online     map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	forward    chan *models.Message
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		online:     make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		forward:    make(chan *models.Message, 64),
	}
}

// Run accepts registrations, disconnects and outbound messages until the
// process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case msg := <-h.forward:
			h.deliver(msg)
		}
	}
}

// Forward queues an already-persisted message for live delivery to the
// receiver. Senders never get an echo; their own client shows the message
// optimistically.
func (h *Hub) Forward(msg *models.Message) {
	h.forward <- msg
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	sessions := h.online[client.user.ID]
	if sessions == nil {
		sessions = make(map[*Client]bool)
		h.online[client.user.ID] = sessions
	}
	sessions[client] = true
	slog.Info("chat client connected", "user", client.user.ID, "session", client.id)
}

func (h *Hub) unregisterClient(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	if sessions := h.online[client.user.ID]; sessions != nil {
		delete(sessions, client)
		if len(sessions) == 0 {
			delete(h.online, client.user.ID)
		}
	}
	close(client.send)
	slog.Info("chat client disconnected", "user", client.user.ID, "session", client.id)
}

func (h *Hub) deliver(msg *models.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.Error("could not encode message for delivery", "err", err)
		return
	}
	for client := range h.online[msg.ReceiverID] {
		select {
		case client.send <- payload:
		default:
			// slow consumer, drop the live copy; the log still has it
		}
	}
}

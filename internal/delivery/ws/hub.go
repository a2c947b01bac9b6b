// Package ws implements the websocket hub behind real-time notification and
// chat delivery.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"bazaar/internal/domain/service"

	"go.uber.org/fx"
)

// sendBuffer is the per-connection outbound queue. A connection that falls
// this far behind is dropped rather than waited on.
const sendBuffer = 64

// HubParams holds dependencies for the Hub, injected by Fx.
type HubParams struct {
	fx.In

	Logger *slog.Logger
}

// Hub tracks which connections are in which rooms and fans events out to
// them. It implements service.EventBroadcaster.
type Hub struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

// NewHub is the constructor for the Hub.
func NewHub(params HubParams) *Hub {
	return &Hub{
		logger: params.Logger,
		rooms:  make(map[string]map[*client]struct{}),
	}
}

// Broadcast delivers the event to every connection in the room. Delivery is
// best-effort; connections with a full send queue are closed.
func (h *Hub) Broadcast(room string, event *service.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to encode event", slog.String("room", room), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("Dropping slow websocket client", slog.String("room", room))
			h.unregister(c)
			c.close()
		}
	}
}

// HasListeners reports whether any connection is currently in the room.
func (h *Hub) HasListeners(room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room]) > 0
}

// join adds the client to a room.
func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.rooms[room] = struct{}{}
}

// leave removes the client from a room.
func (h *Hub) leave(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c, room)
}

// unregister removes the client from every room it joined.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range c.rooms {
		h.removeLocked(c, room)
	}
}

func (h *Hub) removeLocked(c *client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

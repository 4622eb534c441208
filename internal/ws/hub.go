package ws

import (
	"encoding/json"
	"sync"
)

// Client is one WebSocket connection with its user context.
type Client struct {
	UserID uint
	Role   string
	Send   chan []byte
	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// Room is one conversation's set of live connections (artist + theater, each
// possibly connected from several devices).
type Room struct {
	ConversationID uint
	mu             sync.RWMutex
	clients        map[*Client]struct{}
}

func newRoom(conversationID uint) *Room {
	return &Room{ConversationID: conversationID, clients: make(map[*Client]struct{})}
}

func (r *Room) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *Room) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends the payload to every connection in the room except the
// sender. A connection with a full send buffer is skipped rather than
// blocking the writer.
func (r *Room) Broadcast(from *Client, payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	targets := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			targets = append(targets, c)
		}
	}
	r.mu.RUnlock()
	for _, c := range targets {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// Hub holds the live rooms by conversation id.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]*Room)}
}

func (h *Hub) GetOrCreateRoom(conversationID uint) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[conversationID]; ok {
		return r
	}
	r := newRoom(conversationID)
	h.rooms[conversationID] = r
	return r
}

func (h *Hub) RemoveRoom(conversationID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, conversationID)
}

package notification

import (
	"encoding/json"
	"sync"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/google/uuid"
)

const sendBuffer = 16

// Client is one connected real-time subscriber.
type Client struct {
	ID     string
	UserID int64
	send   chan []byte
}

func NewClient() *Client {
	return &Client{ID: uuid.NewString(), send: make(chan []byte, sendBuffer)}
}

// Messages yields encoded notifications until the client is unregistered.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// Hub is the registry of connected clients. It is safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// Unregister removes c and closes its message channel. Calling it twice is safe.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Identify tags a registered client with userID. It reports false when c is
// no longer registered.
func (h *Hub) Identify(c *Client, userID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	c.UserID = userID
	return true
}

// Send delivers n to a single client.
func (h *Hub) Send(c *Client, n domain.Notification) {
	b, err := json.Marshal(n)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverLocked(c, b)
}

// Broadcast delivers n to every connected client. Clients whose buffer is
// full are dropped rather than blocking the caller.
func (h *Hub) Broadcast(n domain.Notification) {
	b, err := json.Marshal(n)
	if err != nil {
		logger.Log.Error("failed to encode notification", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.deliverLocked(c, b)
	}
}

func (h *Hub) deliverLocked(c *Client, b []byte) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- b:
	default:
		logger.Log.Warn("dropping slow notification client", "client_id", c.ID, "user_id", c.UserID)
		h.removeLocked(c)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

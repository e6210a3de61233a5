package ws

import (
	"encoding/json"
	"sync"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// Event types pushed to subscribers.
const (
	EventTaskCreated = "task_created"
	EventTaskUpdated = "task_updated"
	EventTaskDeleted = "task_deleted"
)

// Event is what goes over the wire to task-feed subscribers.
type Event struct {
	Type   string       `json:"type"`
	TaskID int64        `json:"task_id"`
	Task   *domain.Task `json:"task,omitempty"`
}

// Hub fans task events out to the websocket clients subscribed to each user.
// A user can have several open connections (multiple tabs).
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[c.UserID] == nil {
		h.subs[c.UserID] = make(map[*Client]struct{})
	}
	h.subs[c.UserID][c] = struct{}{}
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, c.UserID)
		}
	}
}

// Publish delivers the event to every connection of userID. Slow clients are
// dropped rather than blocking the publisher.
func (h *Hub) Publish(userID int64, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("ws: marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subs[userID] {
		select {
		case c.Send <- payload:
		default:
			go c.Close()
		}
	}
}

// Subscribers reports how many connections are open for userID.
func (h *Hub) Subscribers(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

package hub

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Event types published when the catalogue changes.
const (
	GameCreated      = "game.created"
	GameUpdated      = "game.updated"
	GameDeleted      = "game.deleted"
	PendingSubmitted = "pending.submitted"
	PendingApproved  = "pending.approved"
	PendingDenied    = "pending.denied"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is a single SSE connection. The SSE handler reads encoded events
// from it until it is closed.
type Client chan []byte

// Hub fans events out to the clients subscribed to a topic.
type Hub struct {
	topics map[string]map[Client]bool
	mu     sync.RWMutex
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{topics: make(map[string]map[Client]bool)}
}

// HouseholdTopic is the topic shared by the members of a household.
func HouseholdTopic(id uint) string { return fmt.Sprintf("household:%d", id) }

// UserTopic is the topic of a user without a household.
func UserTopic(id uint) string { return fmt.Sprintf("user:%d", id) }

// AdminTopic receives submission events for reviewers.
const AdminTopic = "admin"

// Subscribe adds a client to a topic.
func (h *Hub) Subscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[Client]bool)
	}
	h.topics[topic][client] = true
}

// Unsubscribe removes a client from a topic and closes it.
func (h *Hub) Unsubscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.topics[topic]
	if !ok {
		return
	}
	if _, ok := clients[client]; ok {
		delete(clients, client)
		close(client)
		if len(clients) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Broadcast sends an event to every client of a topic and reports how many
// received it. A client whose buffer is full misses the event.
func (h *Hub) Broadcast(topic string, event Event) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.topics[topic]
	if !ok {
		return 0, nil
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for client := range clients {
		select {
		case client <- msg:
			delivered++
		default:
		}
	}
	return delivered, nil
}

// Subscribers returns the number of clients on a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// clientBuffer is how many undelivered events a subscriber may queue.
const clientBuffer = 16

// Event represents a real-time catalog change sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is the channel a subscriber reads encoded events from.
type Client chan []byte

// Hub fans catalog events out to every subscribed client.
type Hub struct {
	clients map[Client]struct{}
	mu      sync.RWMutex
	logger  *slog.Logger
}

// New creates a new Hub.
func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[Client]struct{}),
		logger:  logger,
	}
}

// Subscribe registers and returns a new client.
func (h *Hub) Subscribe() Client {
	client := make(Client, clientBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client)
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends an event to all clients. A client whose buffer is full
// misses the event rather than blocking the publisher.
func (h *Hub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", slog.String("type", event.Type), slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client <- data:
		default:
			h.logger.Warn("dropping event for slow client", slog.String("type", event.Type))
		}
	}
}

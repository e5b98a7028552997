package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is the envelope for every message pushed to connected clients.
// Delivery is fire-and-forget: no acknowledgement, no replay. Clients that
// reconnect must re-fetch current state over HTTP.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains active WebSocket connections and broadcasts events
type Hub struct {
	// Registered clients (userID -> Client)
	clients map[string]*Client

	// Outbound events to fan out to every client
	broadcast chan Event

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe client map access
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("✅ [WEBSOCKET] Client connected: %s (%s), total: %d",
				client.UserID, client.UserRole, h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; ok {
				delete(h.clients, client.UserID)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("🔴 [WEBSOCKET] Client disconnected: %s, remaining: %d",
				client.UserID, h.ClientCount())

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("❌ Failed to marshal event %s: %v", event.Type, err)
				continue
			}

			h.mu.RLock()
			for userID, client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full, skip; the client will re-sync
					// over HTTP on reconnect
					log.Printf("⚠️ Client buffer full, skipping: %s", userID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Emit fans an event out to every connected client. It never blocks the
// caller on delivery and reports nothing back; callers must not depend on
// the event being received.
func (h *Hub) Emit(eventType string, data interface{}) {
	select {
	case h.broadcast <- Event{Type: eventType, Data: data}:
	default:
		log.Printf("⚠️ Broadcast queue full, dropping event: %s", eventType)
	}
}

// EmitToUser sends an event to one specific user, if connected.
func (h *Hub) EmitToUser(userID, eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("❌ Failed to marshal event %s: %v", eventType, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[userID]; ok {
		select {
		case client.send <- payload:
		default:
			log.Printf("⚠️ Client buffer full, skipping: %s", userID)
		}
	}
}

// EmitToRole sends an event to all connected users with the given role.
func (h *Hub) EmitToRole(role, eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("❌ Failed to marshal event %s: %v", eventType, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.UserRole == role {
			select {
			case client.send <- payload:
			default:
			}
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsUserConnected checks if a user is currently connected
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

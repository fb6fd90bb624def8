package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"bible-study-be/internal/dto"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/mapper"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/service"
)

// Hub fans session changes out to every connected client. It holds one
// subscription on the session store and remembers the last delivered state
// so a newly registered client starts from it.
type Hub struct {
	sessions service.ISessionService

	// Registered clients, keyed by connection
	clients map[*Client]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Guards clients and latest; held while sending so order is preserved
	mu     sync.Mutex
	latest []byte

	// Closed when Run returns
	done chan struct{}

	logger logger.ILogger
}

func NewHub(sessions service.ISessionService, log logger.ILogger) *Hub {
	return &Hub{
		sessions:   sessions,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]struct{}),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run serves register and unregister requests until ctx is done, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	unsubscribe := h.sessions.Subscribe(h.onSession)
	defer unsubscribe()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			if h.latest != nil {
				h.deliver(client, h.latest)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ID, "clients": count})

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.remove(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) onSession(session *entity.Session) {
	data, err := json.Marshal(dto.SessionEvent{Type: "session", Data: mapper.ToSession(session)})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode session event", map[string]interface{}{"error": err})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for client := range h.clients {
		h.deliver(client, data)
	}
}

// deliver must be called with h.mu held.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"client_id": client.ID})
		h.remove(client)
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.ID})
}

// Package hub tracks connected WebSocket viewers and fans ticks out to
// them. Each client may declare a symbol interest set via a subscribe
// message; the set is recorded per client but delivery is fan-out to every
// open connection, so interest-based filtering can be wired in later
// without changing the interface.
package hub

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"trading-monitor/internal/metrics"
	"trading-monitor/internal/model"
)

// Hub is the subscription registry and broadcast fan-out.
// Safe for concurrent register/unregister/broadcast.
type Hub struct {
	log     *slog.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	clients map[*Client]bool
}

// New creates an empty Hub. metrics may be nil.
func New(log *slog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		log:     log,
		metrics: m,
		clients: make(map[*Client]bool),
	}
}

// Register wraps an upgraded connection in a Client, adds it to the
// registry with an empty interest set and starts its pumps.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := &Client{
		conn:    conn,
		send:    make(chan []byte, 256),
		hub:     h,
		symbols: make(map[string]struct{}),
	}

	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ConnectedClients.Set(float64(count))
	}
	h.log.Info("viewer connected", "total", count)

	go c.writePump()
	go c.readPump()
	return c
}

// remove drops a client from the registry and closes its send channel.
// Idempotent: a client already removed is a no-op.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()
	close(c.send)

	if h.metrics != nil {
		h.metrics.ConnectedClients.Set(float64(count))
	}
	h.log.Info("viewer disconnected", "total", count)
}

// ClientCount returns the number of registered viewers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastTick serializes the tick once and hands it to every registered
// client. Delivery is best-effort: a client whose send queue is full simply
// misses the tick.
func (h *Hub) BroadcastTick(t *model.Tick) {
	msg := t.JSON()

	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default: // slow viewer, drop tick
		}
	}
	h.mu.RUnlock()

	if h.metrics != nil {
		h.metrics.TicksBroadcast.WithLabelValues(t.Market).Inc()
	}
}

// Package notify pushes collection change events to the desktop shell over
// a local websocket, so open views (table, dashboard, map) refresh without
// polling.
package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"numis_go/internal/domain"

	"github.com/gorilla/websocket"
)

const sendBuffer = 16

// Hub fans change events out to every connected subscriber. It implements
// domain.Notifier, so the store publishes straight into it.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	log      *slog.Logger
	upgrader websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
		upgrader: websocket.Upgrader{
			// The endpoint binds to localhost only; the desktop shell is
			// the sole expected origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// CollectionChanged broadcasts one change event to all subscribers. Clients
// that cannot keep up are dropped rather than blocking the store.
func (h *Hub) CollectionChanged(ev domain.ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("failed to encode change event", slog.Any("error", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("dropping slow change-event subscriber")
			h.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades a subscriber connection and keeps it registered until
// it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readLoop discards inbound frames; its only job is to notice the close.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	c.conn.Close()
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

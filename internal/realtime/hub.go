// Package realtime pushes refresh hints to open admin dashboards over
// websockets.
package realtime

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/noble-it/hub/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Message struct {
	Type    string `json:"type"`
	Topic   string `json:"topic,omitempty"`
	Message string `json:"message,omitempty"`
}

// conn serializes writes; gorilla allows one concurrent writer per connection.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return fn()
}

type Hub struct {
	clients  map[*conn]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewHub(allowedOrigins []string, m *metrics.Metrics, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Hub{
		clients: make(map[*conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		metrics: m,
		logger:  logger,
	}
}

// Clients reports the number of open connections.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast tells every dashboard that topic changed. Connections that fail
// to accept the message are dropped.
func (h *Hub) Broadcast(topic string) {
	if h == nil {
		return
	}

	h.mu.RLock()
	if len(h.clients) == 0 {
		h.mu.RUnlock()
		return
	}

	clients := make([]*conn, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	msg := Message{Type: "refresh", Topic: topic, Message: "Dashboard data updated"}

	for _, c := range clients {
		if err := c.write(func() error { return c.ws.WriteJSON(msg) }); err != nil {
			h.logger.Warn("failed to broadcast refresh", "topic", topic, "error", err)
			h.remove(c)
		}
	}
}

// Serve upgrades the request and blocks until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &conn{ws: ws}

	ws.SetReadLimit(maxMessageSize)
	if err := ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.logger.Warn("failed to set initial read deadline", "error", err)
		_ = ws.Close()
		return
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.add(c)
	defer h.remove(c)

	err = c.write(func() error {
		return ws.WriteJSON(Message{Type: "connected", Message: "WebSocket connection established"})
	})
	if err != nil {
		h.logger.Warn("failed to send welcome message", "error", err)
		return
	}

	done := make(chan struct{})
	defer close(done)

	go h.ping(c, done)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (h *Hub) ping(c *conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.write(func() error { return c.ws.WriteMessage(websocket.PingMessage, nil) }); err != nil {
				h.logger.Debug("websocket ping failed", "error", err)
				return
			}
		}
	}
}

func (h *Hub) add(c *conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.metrics.WebsocketClients(1)
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		h.metrics.WebsocketClients(-1)
		_ = c.ws.Close()
	}
}

// Close drops every connection, used on shutdown.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*conn, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.remove(c)
	}
}

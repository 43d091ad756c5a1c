package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// broadcastWriteTimeout bounds each feed write so a stalled client cannot
// block the request handler that triggered the broadcast.
const broadcastWriteTimeout = 5 * time.Second

// ChangeEvent is pushed to every connected dashboard client after a record
// write succeeds, so open views can refresh without polling.
type ChangeEvent struct {
	Kind   string `json:"kind"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

// Hub tracks the WebSocket clients subscribed to the change feed.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Subscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

func (h *Hub) Broadcast(event ChangeEvent) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), broadcastWriteTimeout)
		err := conn.Write(ctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			slog.Debug("ws write error", "error", err)
			h.Unsubscribe(conn)
			conn.Close(websocket.StatusNormalClosure, "")
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("ws accept error", "error", err)
		return
	}
	defer conn.CloseNow()

	s.hub.Subscribe(conn)
	defer s.hub.Unsubscribe(conn)

	// Keep the connection open until the client goes away.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

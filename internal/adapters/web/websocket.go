package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lcalzada-xor/wsurvey/internal/core/domain"
	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow any origin for simplicity, realistically restrict this.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSManager pushes every new snapshot to all connected WebSocket clients.
type WSManager struct {
	survey ports.SurveyService

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewWSManager creates a manager bound to the survey service.
func NewWSManager(survey ports.SurveyService) *WSManager {
	return &WSManager{
		survey:  survey,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start launches the broadcaster goroutine. It stops when ctx is cancelled.
func (m *WSManager) Start(ctx context.Context) {
	snapshots, cancel := m.survey.Subscribe()

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-snapshots:
				if !ok {
					return
				}
				m.broadcast(snap)
			}
		}
	}()
}

// HandleWebSocket upgrades the connection and registers the client. Clients
// are write-only; reads run only to detect disconnects.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade error", "error", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = true
	m.mu.Unlock()

	go func() {
		defer conn.Close()
		defer func() {
			m.mu.Lock()
			delete(m.clients, conn)
			m.mu.Unlock()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (m *WSManager) broadcast(snap domain.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		slog.Error("Snapshot marshal error", "error", err)
		return
	}

	m.mu.Lock()
	for conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Debug("WebSocket write error, dropping client", "error", err)
			conn.Close()
			delete(m.clients, conn)
		}
	}
	m.mu.Unlock()
}

package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
	"github.com/lcalzada-xor/vulnboard/internal/core/services/inventory"
	"github.com/lcalzada-xor/vulnboard/internal/telemetry"
)

const writeWait = 5 * time.Second

// WSMessage is the envelope for every message pushed to dashboard clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// InventoryPayload is a full inventory view as pushed after each refresh.
type InventoryPayload struct {
	RefreshID string                   `json:"refreshId"`
	Summary   domain.Summary           `json:"summary"`
	Sort      domain.SortConfig        `json:"sort"`
	Rows      []domain.ConsolidatedRow `json:"rows"`
}

// WSManager tracks websocket clients and pushes inventory snapshots to them.
type WSManager struct {
	Service ports.InventoryService
	Clients map[*websocket.Conn]struct{}
	mu      sync.Mutex

	upgrader websocket.Upgrader
}

// NewWSManager creates a manager. allowedOrigins lists the Origin header
// values accepted on upgrade; requests without an Origin are always accepted.
func NewWSManager(service ports.InventoryService, allowedOrigins []string) *WSManager {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WSManager{
		Service: service,
		Clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				slog.Warn("WebSocket origin rejected", "origin", origin)
				return false
			},
		},
	}
}

// HandleWebSocket upgrades the connection and sends the current view
// immediately so a new client does not wait for the next refresh.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	data, err := json.Marshal(m.inventoryMessage(m.Service.Snapshot()))
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			return
		}
	}

	m.mu.Lock()
	m.Clients[conn] = struct{}{}
	telemetry.WSClients.Set(float64(len(m.Clients)))
	m.mu.Unlock()
	slog.Debug("WebSocket connected", "remote", r.RemoteAddr)

	go func() {
		defer conn.Close()
		defer func() {
			m.mu.Lock()
			delete(m.Clients, conn)
			telemetry.WSClients.Set(float64(len(m.Clients)))
			m.mu.Unlock()
			slog.Debug("WebSocket disconnected", "remote", r.RemoteAddr)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// NotifySnapshot pushes the refreshed inventory, sorted by the session
// selection, to every client.
func (m *WSManager) NotifySnapshot(_ context.Context, snapshot *domain.Snapshot) {
	m.broadcastMessage(m.inventoryMessage(snapshot))
}

// ClientCount returns the number of connected clients.
func (m *WSManager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Clients)
}

// inventoryMessage renders snapshot itself, not whatever the service holds
// by the time the message is built, so refresh id and rows always agree.
func (m *WSManager) inventoryMessage(snapshot *domain.Snapshot) WSMessage {
	cfg := m.Service.SortConfig()
	summary := snapshot.Summary()
	summary.Loading = m.Service.Summary().Loading
	return WSMessage{
		Type: "inventory",
		Payload: InventoryPayload{
			RefreshID: snapshot.RefreshID,
			Summary:   summary,
			Sort:      cfg,
			Rows:      inventory.SortRows(snapshot.Rows, cfg),
		},
	}
}

func (m *WSManager) broadcastMessage(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("WebSocket marshal failed", "type", msg.Type, "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.Clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(m.Clients, conn)
		}
	}
	telemetry.WSClients.Set(float64(len(m.Clients)))
}

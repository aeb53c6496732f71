package notifyhub

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/moyoez/configd/presentation"
	"github.com/moyoez/configd/tool"
	"github.com/moyoez/configd/types"
)

var _ presentation.Presenter = (*Hub)(nil)

// Hub holds WebSocket connections and broadcasts presentation and config
// changes to all clients.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]string // conn -> client id

	sendMu sync.Mutex // gorilla conns allow one concurrent writer
}

// New creates a new notify hub.
func New() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]string),
	}
}

// Register adds a WebSocket connection to the hub and returns its client id.
func (h *Hub) Register(conn *websocket.Conn) string {
	id := tool.GenerateShortID()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = id
	return id
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the notification as JSON to all registered connections.
func (h *Hub) Broadcast(notification *types.Notification) {
	if notification == nil {
		return
	}
	if notification.ID == "" {
		notification.ID = tool.GenerateRandomUUID()
	}
	payload, err := sonic.Marshal(notification)
	if err != nil {
		tool.DefaultLogger.Warnf("notifyhub: encode %s: %v", notification.Type, err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	h.sendMu.Lock()
	defer h.sendMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			tool.DefaultLogger.Debugf("notifyhub: write to %s: %v", h.clientID(conn), err)
		}
	}
}

func (h *Hub) clientID(conn *websocket.Conn) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[conn]
}

func (h *Hub) SetTheme(theme string) {
	h.Broadcast(&types.Notification{Type: types.NotifyTypeTheme, Data: map[string]any{"value": theme}})
}

func (h *Hub) SetFontFamily(family string) {
	h.Broadcast(&types.Notification{Type: types.NotifyTypeFontFamily, Data: map[string]any{"value": family}})
}

func (h *Hub) SetFontSize(size string) {
	h.Broadcast(&types.Notification{Type: types.NotifyTypeFontSize, Data: map[string]any{"value": size}})
}

// BroadcastConfig announces a new snapshot; cfg is nil when the config was cleared.
// Its signature matches settings.Store.Subscribe.
func (h *Hub) BroadcastConfig(cfg *types.Config) {
	h.Broadcast(&types.Notification{Type: types.NotifyTypeConfig, Data: map[string]any{"config": cfg}})
}

package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType defines the type of WebSocket message.
type MessageType string

const (
	MsgAnswerScored    MessageType = "answer_scored"
	MsgSessionComplete MessageType = "session_complete"
	MsgError           MessageType = "error"
)

// Message is the WebSocket envelope format.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages watcher connections per session.
type Hub struct {
	// sessionID -> connections
	watchers map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one watcher WebSocket connection.
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message for every watcher of one session.
type BroadcastMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates the hub and starts its coordination loop.
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.SessionID] == nil {
				h.watchers[conn.SessionID] = make(map[*Connection]bool)
			}
			h.watchers[conn.SessionID][conn] = true
			h.mu.Unlock()
			slog.Debug("watcher connected", "session", conn.SessionID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.SessionID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.watchers, conn.SessionID)
				}
			}
			h.mu.Unlock()
			slog.Debug("watcher disconnected", "session", conn.SessionID)

		case bm := <-h.broadcast:
			data, err := json.Marshal(bm.Message)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for conn := range h.watchers[bm.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Slow consumer; drop the message rather than block
					// the hub loop.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a watcher connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a watcher connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToWatchers implements service.Broadcaster.
func (h *Hub) BroadcastToWatchers(sessionID string, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("broadcast payload marshal failed", "event", event, "err", err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(event),
			Payload: data,
		},
	}
}

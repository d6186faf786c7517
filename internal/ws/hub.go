package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event is the server→client broadcast envelope.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Client is one live gateway connection. Writes go through the buffered Send
// channel; the gateway's write pump drains it onto the wire.
type Client struct {
	ID        string
	UserID    uint
	Username  string
	SessionID uint // 0 until the client joins a session
	Send      chan []byte
}

// Hub is the connection registry: session id → set of joined clients. Only
// the hub mutates the registry; the gateway calls Join/Leave around the
// connection lifecycle.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uint]map[*Client]struct{}
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[uint]map[*Client]struct{}),
		log:      log,
	}
}

// Join binds the client to the session's broadcast group.
func (h *Hub) Join(sessionID uint, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Client]struct{})
	}
	h.sessions[sessionID][c] = struct{}{}
	c.SessionID = sessionID

	h.log.Info("client joined session",
		zap.String("connection_id", c.ID),
		zap.Uint("user_id", c.UserID),
		zap.Uint("session_id", sessionID),
		zap.Int("group_size", len(h.sessions[sessionID])))
}

// Leave removes the client from its group, if any, and reports the session
// it was in.
func (h *Hub) Leave(c *Client) (uint, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessionID := c.SessionID
	if sessionID == 0 {
		return 0, false
	}
	if group, ok := h.sessions[sessionID]; ok {
		delete(group, c)
		if len(group) == 0 {
			delete(h.sessions, sessionID)
		}
	}
	c.SessionID = 0

	h.log.Info("client left session",
		zap.String("connection_id", c.ID),
		zap.Uint("user_id", c.UserID),
		zap.Uint("session_id", sessionID))
	return sessionID, true
}

// Broadcast sends the event to every client joined to the session. Delivery
// is fire-and-forget: a client whose send buffer is full is skipped.
func (h *Hub) Broadcast(sessionID uint, event Event) {
	h.BroadcastExcept(sessionID, nil, event)
}

// BroadcastExcept is Broadcast minus one client (typically the originator).
func (h *Hub) BroadcastExcept(sessionID uint, except *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("broadcast marshal failed", zap.Error(err))
		return
	}

	// Sends stay under the read lock: they are non-blocking, and holding it
	// guarantees no send races a Leave that retires the client's channel.
	h.mu.RLock()
	defer h.mu.RUnlock()

	group, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	for c := range group {
		if c == except {
			continue
		}
		select {
		case c.Send <- data:
		default:
			h.log.Warn("send buffer full, dropping event",
				zap.String("connection_id", c.ID),
				zap.String("event", event.Event))
		}
	}
}

// GroupSize returns the number of clients joined to a session.
func (h *Hub) GroupSize(sessionID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

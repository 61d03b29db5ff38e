package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

// client is one WebSocket connection subscribed to a board room.
type client struct {
	conn    *websocket.Conn
	userID  uint64
	boardID uint64
	send    chan []byte
}

// Hub tracks board rooms and fans change events out to their subscribers.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint64]map[*client]struct{}
	users map[uint64]map[*client]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint64]map[*client]struct{}),
		users: make(map[uint64]map[*client]struct{}),
	}
}

// Subscribe registers conn in the board's room and services it until the
// connection drops. Blocks for the connection's lifetime.
func (h *Hub) Subscribe(conn *websocket.Conn, userID, boardID uint64) {
	c := &client{
		conn:    conn,
		userID:  userID,
		boardID: boardID,
		send:    make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	if h.rooms[boardID] == nil {
		h.rooms[boardID] = make(map[*client]struct{})
	}
	h.rooms[boardID][c] = struct{}{}
	if h.users[userID] == nil {
		h.users[userID] = make(map[*client]struct{})
	}
	h.users[userID][c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	c.readLoop()
	h.remove(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.boardID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.boardID)
		}
	}
	if conns, ok := h.users[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.users, c.userID)
		}
	}
	h.mu.Unlock()

	close(c.send)
	c.conn.Close()
}

// EmitBoardChange delivers a change event to the board's room. A full or
// disconnected subscriber is skipped rather than blocked on.
func (h *Hub) EmitBoardChange(boardID uint64, action string, context map[string]interface{}) bool {
	payload := ChangePayload{
		BoardID: boardID,
		Action:  action,
		At:      time.Now().UTC(),
		Context: context,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", action, err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	for c := range h.rooms[boardID] {
		select {
		case c.send <- data:
			delivered = true
		default:
		}
	}
	return delivered
}

// NotifyUser pings every connection the user currently holds.
func (h *Hub) NotifyUser(userID uint64) bool {
	data, _ := json.Marshal(map[string]string{"event": "notification"})

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	for c := range h.users[userID] {
		select {
		case c.send <- data:
			delivered = true
		default:
		}
	}
	return delivered
}

func (c *client) writeLoop() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readLoop drains inbound frames; clients only listen, so anything other than
// a control frame is discarded. Returns when the connection closes.
func (c *client) readLoop() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

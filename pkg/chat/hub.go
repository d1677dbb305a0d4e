package chat

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Hub fans messages out to websocket clients grouped into rooms keyed by
// conversation id. Delivery is fire-and-forget: messages are durably stored
// before publishing, so a failed write only drops the live notification.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Join(conversationID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[conversationID] == nil {
		h.rooms[conversationID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[conversationID][conn] = true
}

func (h *Hub) Leave(conversationID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.rooms[conversationID], conn)
	if len(h.rooms[conversationID]) == 0 {
		delete(h.rooms, conversationID)
	}
}

// Publish sends payload to every client in the room. Write failures evict
// the client but are otherwise ignored.
func (h *Hub) Publish(conversationID uint, payload interface{}) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[conversationID]))
	for conn := range h.rooms[conversationID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			log.Printf("chat: dropping client in room %d: %v", conversationID, err)
			h.Leave(conversationID, conn)
			conn.Close()
		}
	}
}

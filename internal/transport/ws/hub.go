package ws

import (
	"sync"
)

// Conn is the minimal connection surface the hub needs. The gateway owns
// the underlying transport; the hub only holds non-owning membership
// references.
type Conn interface {
	Send(v any) error
	Close() error
}

// Hub is the room registry: stream id -> set of member connections.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[int64]map[Conn]struct{})}
}

func (h *Hub) Join(streamID int64, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[streamID]
	if !ok {
		rs = make(map[Conn]struct{})
		h.rooms[streamID] = rs
	}
	rs[c] = struct{}{}
}

// Leave removes c from the room's set and drops the room entirely once
// empty. A no-op when c was not a member.
func (h *Hub) Leave(streamID int64, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rs, ok := h.rooms[streamID]; ok {
		delete(rs, c)
		if len(rs) == 0 {
			delete(h.rooms, streamID)
		}
	}
}

// Broadcast sends payload to every current member of the room. Stale or
// failing connections are skipped, never failing the whole broadcast.
func (h *Hub) Broadcast(streamID int64, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rs, ok := h.rooms[streamID]; ok {
		for c := range rs {
			_ = c.Send(payload) // best-effort
		}
	}
}

package ws

import (
	"github.com/streamhub/stream-service/internal/domain"
)

// EventBroadcaster adapts the hub to the pipeline's Broadcaster contract,
// picking the chat or donation frame type per event.
type EventBroadcaster struct {
	hub *Hub
}

func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

func (b *EventBroadcaster) Broadcast(streamID int64, event *domain.ChatEvent) {
	b.hub.Broadcast(streamID, eventFrame(event))
}

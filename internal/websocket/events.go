package websocket

import (
	"log"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastNotification sends a toast to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(p NotificationPayload) {
	b.broadcast(NewMessage(TypeNotification, p))
}

// BroadcastStoreChanged tells subscribers a collection or setting changed.
func (b *EventBroadcaster) BroadcastStoreChanged(change models.StoreChange) {
	b.broadcast(NewMessage(TypeStoreChanged, StoreChangedPayload{
		Collection: change.Collection,
		Op:         change.Op,
		ID:         change.ID,
	}))
}

// BroadcastScreenChanged sends a screen's new selection state.
func (b *EventBroadcaster) BroadcastScreenChanged(p ScreenChangedPayload) {
	b.broadcast(NewMessage(TypeScreenChanged, p))
}

// BroadcastCalendarSyncCompleted sends a calendar sync completed event.
func (b *EventBroadcaster) BroadcastCalendarSyncCompleted(result models.CalendarSyncResult) {
	payload := CalendarSyncPayload{
		Collection:    result.Collection,
		Status:        "success",
		EventsFound:   result.EventsFound,
		EventsCreated: result.EventsCreated,
		EventsUpdated: result.EventsUpdated,
	}
	if result.Error != nil {
		payload.Status = "error"
	}

	b.broadcast(NewMessage(TypeCalendarSyncCompleted, payload))
}

// BroadcastCalendarSyncError sends a calendar sync error event.
func (b *EventBroadcaster) BroadcastCalendarSyncError(err error) {
	b.broadcast(NewMessage(TypeCalendarSyncError, CalendarSyncErrorPayload{
		Error:   "sync_error",
		Message: err.Error(),
	}))
}

// broadcast sends a message to all connected clients.
func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}

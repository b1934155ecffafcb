package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeNotification          MessageType = "notification"
	TypeStoreChanged          MessageType = "store.changed"
	TypeScreenChanged         MessageType = "screen.changed"
	TypeCalendarSyncCompleted MessageType = "calendar.sync_completed"
	TypeCalendarSyncError     MessageType = "calendar.sync_error"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// NotificationPayload is the payload for notification (toast) events.
type NotificationPayload struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // success, error, info, warning
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StoreChangedPayload is the payload for store.changed events. It replaces
// the browser's storage-event listener.
type StoreChangedPayload struct {
	Collection string `json:"collection"`
	Op         string `json:"op"`
	ID         string `json:"id,omitempty"`
}

// ScreenChangedPayload is the payload for screen.changed events.
type ScreenChangedPayload struct {
	Screen   string `json:"screen"`
	State    string `json:"state"`
	DateKey  string `json:"date_key,omitempty"`
	Tab      string `json:"tab,omitempty"`
	EmptyDay bool   `json:"empty_day,omitempty"`
}

// CalendarSyncPayload is the payload for calendar.sync_completed events.
type CalendarSyncPayload struct {
	Collection    string `json:"collection"`
	Status        string `json:"status"`
	EventsFound   int    `json:"events_found"`
	EventsCreated int    `json:"events_created"`
	EventsUpdated int    `json:"events_updated"`
}

// CalendarSyncErrorPayload is the payload for calendar.sync_error events.
type CalendarSyncErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	OriginalType string `json:"original_type,omitempty"`
}

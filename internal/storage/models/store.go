package models

import (
	"encoding/json"
	"time"
)

// Store collections. Each replaces one ad-hoc browser storage key.
const (
	CollectionCalendarEvents = "calendarEvents"
	CollectionTasks          = "tasks"
	CollectionEvents         = "events"
	CollectionMeetings       = "meetings"
	CollectionTodoTasks      = "todoTasks"
)

// Scalar settings keys.
const (
	SettingTheme = "theme"
)

// EventCollections are the collections whose payloads decode as CalendarEvent.
var EventCollections = []string{
	CollectionCalendarEvents,
	CollectionTasks,
	CollectionEvents,
	CollectionMeetings,
}

// Collections lists every store collection.
var Collections = append(append([]string(nil), EventCollections...), CollectionTodoTasks)

// IsCollection reports whether name is a known store collection.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// IsEventCollection reports whether items in the collection are calendar events.
func IsEventCollection(name string) bool {
	for _, c := range EventCollections {
		if c == name {
			return true
		}
	}
	return false
}

// StoreItem is one JSON document held in a collection.
type StoreItem struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	DateKey    string          `json:"date,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Change operations published on every store mutation.
const (
	ChangeAppend = "append"
	ChangeUpsert = "upsert"
	ChangeRemove = "remove"
	ChangeReset  = "reset"
	ChangeSet    = "set"
)

// StoreChange describes a single mutation of the store.
type StoreChange struct {
	Collection string `json:"collection"`
	Op         string `json:"op"`
	ID         string `json:"id,omitempty"`
}

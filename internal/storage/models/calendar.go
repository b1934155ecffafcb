// Package models contains the domain models for the application.
package models

import (
	"time"
)

// CalendarEvent is one schedulable item shown on a day cell: a task, event,
// meeting, reminder, leave or birthday.
type CalendarEvent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Category     string    `json:"category"`
	Time         string    `json:"time,omitempty"`
	StartTime    string    `json:"startTime,omitempty"`
	EndTime      string    `json:"endTime,omitempty"`
	Participants []string  `json:"participants,omitempty"`
	Recurrence   string    `json:"recurrence,omitempty"` // RRULE, e.g. FREQ=YEARLY
	CreatedAt    time.Time `json:"createdAt"`
}

// HasRange reports whether the event uses the start/end form (meetings).
func (e CalendarEvent) HasRange() bool {
	return e.StartTime != "" || e.EndTime != ""
}

// CalendarSyncResult contains the results of pulling events from the admin backend.
type CalendarSyncResult struct {
	Collection    string    `json:"collection"`
	EventsFound   int       `json:"events_found"`
	EventsCreated int       `json:"events_created"`
	EventsUpdated int       `json:"events_updated"`
	Error         error     `json:"-"`
	SyncedAt      time.Time `json:"synced_at"`
}

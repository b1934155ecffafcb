package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/office-admin/dashboard/internal/storage/models"
	"github.com/office-admin/dashboard/internal/validate"
)

// Tab is the creation modal's active form.
type Tab string

const (
	TabTask    Tab = "task"
	TabEvent   Tab = "event"
	TabMeeting Tab = "meeting"
)

// ParseTab accepts a tab name case-insensitively; empty means Task.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabTask:
		return TabTask, nil
	case TabEvent:
		return TabEvent, nil
	case TabMeeting:
		return TabMeeting, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Draft is the in-memory state of an open creation form.
type Draft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Date         string   `json:"date,omitempty"`
	Category     string   `json:"category,omitempty"`
	Time         string   `json:"time,omitempty"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Recurrence   string   `json:"recurrence,omitempty"`
}

// ValidationError is a user-facing rejection of a draft field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// Validate applies the submit policy for tab. It never mutates the draft.
func (d Draft) Validate(tab Tab) error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("title", "Please enter a title")
	}
	if d.Date != "" {
		if _, err := ParseDateKey(d.Date); err != nil {
			return invalid("date", "Please pick a valid date")
		}
	}
	if d.Recurrence != "" {
		if _, err := ParseRule(d.Recurrence); err != nil {
			return invalid("recurrence", "Please enter a valid repeat rule")
		}
	}

	switch tab {
	case TabTask, TabEvent:
		if strings.TrimSpace(d.Time) == "" {
			return invalid("time", "Please select a time slot")
		}
		if _, err := ParseClock(d.Time); err != nil {
			return invalid("time", "Please select a valid time slot")
		}
		if tab == TabEvent && d.Category != "" && !IsKnownCategory(d.Category) {
			return invalid("category", fmt.Sprintf("Unknown category %q", d.Category))
		}

	case TabMeeting:
		if d.StartTime == "" || d.EndTime == "" {
			return invalid("time", "Please select start and end time")
		}
		start, err := ParseClock(d.StartTime)
		if err != nil {
			return invalid("startTime", "Please select a valid start time")
		}
		end, err := ParseClock(d.EndTime)
		if err != nil {
			return invalid("endTime", "Please select a valid end time")
		}
		if end <= start {
			return invalid("endTime", "End time must be after start time")
		}
		if len(d.Participants) == 0 {
			return invalid("participants", "Please add at least one participant")
		}
		for _, p := range d.Participants {
			if !validate.Email(p) {
				return invalid("participants", fmt.Sprintf("Invalid participant email: %s", p))
			}
		}

	default:
		return invalid("tab", fmt.Sprintf("Unknown form %q", tab))
	}

	return nil
}

// ToEvent converts a validated draft into an event. fallbackDate is used
// when the draft carries no date.
func (d Draft) ToEvent(tab Tab, id, fallbackDate string, now time.Time) models.CalendarEvent {
	date := d.Date
	if date == "" {
		date = fallbackDate
	}

	ev := models.CalendarEvent{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Date:        date,
		Recurrence:  d.Recurrence,
		CreatedAt:   now.UTC(),
	}

	switch tab {
	case TabTask:
		ev.Category = CategoryDailyTask
		ev.Time = d.Time
	case TabEvent:
		ev.Category = d.Category
		if ev.Category == "" {
			ev.Category = CategoryOther
		}
		ev.Time = d.Time
	case TabMeeting:
		ev.Category = CategoryMeeting
		ev.StartTime = d.StartTime
		ev.EndTime = d.EndTime
		ev.Participants = make([]string, len(d.Participants))
		for i, p := range d.Participants {
			ev.Participants[i] = strings.TrimSpace(p)
		}
	}
	return ev
}

// CollectionFor returns the store collection a tab's submissions go to.
func CollectionFor(tab Tab) string {
	switch tab {
	case TabEvent:
		return models.CollectionEvents
	case TabMeeting:
		return models.CollectionMeetings
	}
	return models.CollectionTasks
}

// ParseClock parses a 12-hour "h:mm AM/PM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var meridiem string
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
	default:
		return 0, fmt.Errorf("clock %q: missing AM/PM", s)
	}

	hm := strings.TrimSpace(strings.TrimSuffix(s, meridiem))
	h, m, ok := strings.Cut(hm, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: expected h:mm", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("clock %q: bad hour", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q: bad minute", s)
	}

	hour %= 12
	if meridiem == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "h:mm AM/PM". Values past
// midnight wrap.
func FormatClock(minutes int) string {
	minutes = ((minutes % (24 * 60)) + 24*60) % (24 * 60)
	hour, minute := minutes/60, minutes%60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

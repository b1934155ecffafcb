package calendar

import (
	"log"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// ExpandMonth returns the events as they fall in the given month (0-based,
// normalized). Recurring events are replaced by one copy per occurrence
// inside the month; one-off events pass through unchanged regardless of date.
func ExpandMonth(events []models.CalendarEvent, year, month int) []models.CalendarEvent {
	year, month = Normalize(year, month)
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return ExpandRange(events, start, end)
}

// ExpandRange expands recurring events over [start, end].
func ExpandRange(events []models.CalendarEvent, start, end time.Time) []models.CalendarEvent {
	out := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Recurrence == "" {
			out = append(out, ev)
			continue
		}
		out = append(out, expandEvent(ev, start, end)...)
	}
	return out
}

func expandEvent(ev models.CalendarEvent, start, end time.Time) []models.CalendarEvent {
	dtstart, err := ParseDateKey(ev.Date)
	if err != nil {
		log.Printf("Skipping recurring event %s with bad date: %v", ev.ID, err)
		return nil
	}

	r, err := ParseRule(ev.Recurrence)
	if err != nil {
		log.Printf("Skipping recurring event %s with bad rule %q: %v", ev.ID, ev.Recurrence, err)
		return nil
	}
	r.DTStart(dtstart)

	var out []models.CalendarEvent
	for _, t := range r.Between(start, end, true) {
		occ := ev
		occ.Date = t.Format(DateKeyLayout)
		out = append(out, occ)
	}
	return out
}

// ParseRule parses an RRULE value, with or without the "RRULE:" prefix.
func ParseRule(rule string) (*rrule.RRule, error) {
	return rrule.StrToRRule(strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:"))
}

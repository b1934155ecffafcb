package calendar

import (
	"fmt"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// PointEventLength is how long an event with a single time of day lasts.
const PointEventLength = 30

// Conflict is an existing event whose time overlaps a new one.
type Conflict struct {
	EventID      string `json:"event_id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	OverlapStart string `json:"overlap_start"`
	OverlapEnd   string `json:"overlap_end"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("Overlaps with %s (%s - %s)", c.Title, c.OverlapStart, c.OverlapEnd)
}

// ClockSpan returns an event's span in minutes since midnight. A start/end
// range wins over a single time, which lasts PointEventLength minutes.
// All-day events have no span.
func ClockSpan(ev models.CalendarEvent) (start, end int, ok bool) {
	if ev.HasRange() {
		s, errS := ParseClock(ev.StartTime)
		e, errE := ParseClock(ev.EndTime)
		if errS == nil && errE == nil && e > s {
			return s, e, true
		}
	}
	if ev.Time != "" {
		if m, err := ParseClock(ev.Time); err == nil {
			return m, m + PointEventLength, true
		}
	}
	return 0, 0, false
}

// Conflicts lists the events on ev's date whose spans overlap ev's. Events
// sharing ev's ID and untimed events never conflict.
func Conflicts(events []models.CalendarEvent, ev models.CalendarEvent) []Conflict {
	start, end, ok := ClockSpan(ev)
	if !ok {
		return nil
	}

	var conflicts []Conflict
	for _, other := range events {
		if other.Date != ev.Date || (ev.ID != "" && other.ID == ev.ID) {
			continue
		}
		s, e, ok := ClockSpan(other)
		if !ok {
			continue
		}

		overlapStart := max(start, s)
		overlapEnd := min(end, e)
		if overlapStart >= overlapEnd {
			continue
		}

		conflicts = append(conflicts, Conflict{
			EventID:      other.ID,
			Title:        other.Title,
			Category:     other.Category,
			OverlapStart: FormatClock(overlapStart),
			OverlapEnd:   FormatClock(overlapEnd),
		})
	}
	return conflicts
}

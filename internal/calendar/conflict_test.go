package calendar

import (
	"testing"

	"github.com/office-admin/dashboard/internal/storage/models"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "12:00 AM"},
		{9*60 + 5, "9:05 AM"},
		{12 * 60, "12:00 PM"},
		{18*60 + 30, "6:30 PM"},
		{24*60 + 15, "12:15 AM"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.minutes); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
		if tt.minutes < 24*60 {
			if back, err := ParseClock(tt.want); err != nil || back != tt.minutes {
				t.Errorf("ParseClock(%q) = %d, %v; want %d", tt.want, back, err, tt.minutes)
			}
		}
	}
}

func TestClockSpan(t *testing.T) {
	tests := []struct {
		name       string
		ev         models.CalendarEvent
		start, end int
		ok         bool
	}{
		{"range", models.CalendarEvent{StartTime: "2:00 PM", EndTime: "4:00 PM"}, 14 * 60, 16 * 60, true},
		{"point", models.CalendarEvent{Time: "6:30 PM"}, 18*60 + 30, 19 * 60, true},
		{"inverted range falls back to time", models.CalendarEvent{StartTime: "4:00 PM", EndTime: "2:00 PM", Time: "9:00 AM"}, 9 * 60, 9*60 + 30, true},
		{"all day", models.CalendarEvent{}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e, ok := ClockSpan(tt.ev)
			if s != tt.start || e != tt.end || ok != tt.ok {
				t.Errorf("Expected (%d, %d, %v), got (%d, %d, %v)", tt.start, tt.end, tt.ok, s, e, ok)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	existing := []models.CalendarEvent{
		{ID: "m1", Title: "Standup", Date: "2025-05-20", Category: CategoryMeeting, StartTime: "9:00 AM", EndTime: "9:30 AM"},
		{ID: "m2", Title: "Review", Date: "2025-05-20", Category: CategoryMeeting, StartTime: "2:00 PM", EndTime: "4:00 PM"},
		{ID: "t1", Title: "Lunch", Date: "2025-05-20", Category: CategoryDailyTask, Time: "3:45 PM"},
		{ID: "h1", Title: "Holiday", Date: "2025-05-20", Category: CategoryOther},
		{ID: "m3", Title: "Other day", Date: "2025-05-21", StartTime: "2:00 PM", EndTime: "4:00 PM"},
	}

	ev := models.CalendarEvent{ID: "new", Date: "2025-05-20", StartTime: "3:00 PM", EndTime: "4:00 PM"}
	got := Conflicts(existing, ev)
	if len(got) != 2 {
		t.Fatalf("Expected 2 conflicts, got %+v", got)
	}
	if got[0].EventID != "m2" || got[0].OverlapStart != "3:00 PM" || got[0].OverlapEnd != "4:00 PM" {
		t.Errorf("Unexpected first conflict %+v", got[0])
	}
	if got[1].EventID != "t1" || got[1].OverlapStart != "3:45 PM" || got[1].OverlapEnd != "4:00 PM" {
		t.Errorf("Unexpected second conflict %+v", got[1])
	}
	if got[0].String() != "Overlaps with Review (3:00 PM - 4:00 PM)" {
		t.Errorf("Unexpected message %q", got[0].String())
	}

	// Back-to-back is not an overlap.
	if got := Conflicts(existing, models.CalendarEvent{Date: "2025-05-20", StartTime: "9:30 AM", EndTime: "10:00 AM"}); len(got) != 0 {
		t.Errorf("Expected no conflicts for adjacent spans, got %+v", got)
	}

	// An event never conflicts with itself.
	if got := Conflicts(existing, existing[1]); len(got) != 1 || got[0].EventID != "t1" {
		t.Errorf("Expected only the lunch conflict for m2, got %+v", got)
	}
}

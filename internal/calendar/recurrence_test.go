package calendar

import (
	"reflect"
	"testing"

	"github.com/office-admin/dashboard/internal/storage/models"
)

func TestExpandMonth(t *testing.T) {
	events := []models.CalendarEvent{
		{ID: "bday", Title: "Asha", Date: "2020-05-19", Category: CategoryBirthday, Recurrence: "FREQ=YEARLY"},
		{ID: "standup", Title: "Standup", Date: "2025-05-05", Category: CategoryMeeting, Recurrence: "RRULE:FREQ=WEEKLY;COUNT=3"},
		{ID: "once", Title: "Review", Date: "2025-05-22", Category: CategoryDeadline},
		{ID: "broken", Title: "Broken", Date: "2025-05-01", Recurrence: "FREQ=SOMETIMES"},
	}

	got := ExpandMonth(events, 2025, 4)

	var keys []string
	for _, ev := range got {
		keys = append(keys, ev.ID+"@"+ev.Date)
	}
	want := []string{
		"bday@2025-05-19",
		"standup@2025-05-05",
		"standup@2025-05-12",
		"standup@2025-05-19",
		"once@2025-05-22",
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Expected %v, got %v", want, keys)
	}

	june := ExpandMonth(events, 2025, 5)
	for _, ev := range june {
		if ev.ID == "standup" {
			t.Errorf("Expected the standup series to end in May, got %s", ev.Date)
		}
	}

	if counts := CategoryCounts(got, "2025-05-19"); len(counts) != 2 || counts[0].Category != CategoryMeeting {
		t.Errorf("Expected expanded occurrences to be indexed, got %v", counts)
	}
}

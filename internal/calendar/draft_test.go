package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"12:00 AM", 0, false},
		{"9:05 AM", 545, false},
		{"12:30 PM", 750, false},
		{"6:30 PM", 1110, false},
		{"11:59 pm", 1439, false},
		{"2:00PM", 840, false},
		{"13:00 PM", 0, true},
		{"0:30 AM", 0, true},
		{"6:3 PM", 0, true},
		{"6:30", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	meeting := Draft{
		Title:        "Sprint review",
		StartTime:    "2:00 PM",
		EndTime:      "4:00 PM",
		Participants: []string{"lead@example.com"},
	}

	tests := []struct {
		name    string
		tab     Tab
		draft   Draft
		field   string
		message string
	}{
		{"blank title", TabTask, Draft{Title: "   ", Time: "9:00 AM"}, "title", "Please enter a title"},
		{"task without time", TabTask, Draft{Title: "Gym"}, "time", "Please select a time slot"},
		{"task ok", TabTask, Draft{Title: "Gym", Time: "6:30 PM"}, "", ""},
		{"event without time", TabEvent, Draft{Title: "Party"}, "time", "Please select a time slot"},
		{"event unknown category", TabEvent, Draft{Title: "Party", Time: "7:00 PM", Category: "Gala"}, "category", `Unknown category "Gala"`},
		{"event ok", TabEvent, Draft{Title: "Party", Time: "7:00 PM"}, "", ""},
		{"meeting without end", TabMeeting, Draft{Title: "Sync", StartTime: "2:00 PM"}, "time", "Please select start and end time"},
		{"meeting end before start", TabMeeting, Draft{
			Title: "Sync", StartTime: "2:00 PM", EndTime: "1:00 PM", Participants: []string{"a@example.com"},
		}, "endTime", "End time must be after start time"},
		{"meeting equal times", TabMeeting, Draft{
			Title: "Sync", StartTime: "2:00 PM", EndTime: "2:00 PM", Participants: []string{"a@example.com"},
		}, "endTime", "End time must be after start time"},
		{"meeting without participants", TabMeeting, Draft{
			Title: "Sync", StartTime: "2:00 PM", EndTime: "4:00 PM",
		}, "participants", "Please add at least one participant"},
		{"meeting bad participant", TabMeeting, Draft{
			Title: "Sync", StartTime: "2:00 PM", EndTime: "4:00 PM", Participants: []string{"not-an-email"},
		}, "participants", "Invalid participant email: not-an-email"},
		{"meeting ok", TabMeeting, meeting, "", ""},
		{"bad date", TabTask, Draft{Title: "Gym", Time: "6:30 PM", Date: "19-05-2025"}, "date", "Please pick a valid date"},
		{"bad repeat rule", TabTask, Draft{Title: "Standup", Time: "9:00 AM", Recurrence: "FREQ=NOPE"}, "recurrence", "Please enter a valid repeat rule"},
		{"weekly repeat", TabTask, Draft{Title: "Standup", Time: "9:00 AM", Recurrence: "RRULE:FREQ=WEEKLY;BYDAY=MO"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate(tt.tab)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Expected draft to be accepted, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field || verr.Message != tt.message {
				t.Errorf("Expected %s: %q, got %s: %q", tt.field, tt.message, verr.Field, verr.Message)
			}
		})
	}
}

func TestDraftToEvent(t *testing.T) {
	now := time.Date(2025, 5, 19, 10, 0, 0, 0, time.UTC)

	task := Draft{Title: " Gym Session ", Time: "6:30 PM", Category: CategoryMeeting}.ToEvent(TabTask, "t1", "2025-05-19", now)
	if task.Category != CategoryDailyTask || task.Title != "Gym Session" || task.Date != "2025-05-19" {
		t.Errorf("Unexpected task: %+v", task)
	}

	ev := Draft{Title: "Party", Time: "7:00 PM", Date: "2025-05-30"}.ToEvent(TabEvent, "e1", "2025-05-19", now)
	if ev.Category != CategoryOther || ev.Date != "2025-05-30" {
		t.Errorf("Expected event defaulting to Other on its own date, got %+v", ev)
	}

	m := Draft{
		Title: "Sync", StartTime: "2:00 PM", EndTime: "4:00 PM", Time: "9:00 AM",
		Participants: []string{" a@example.com "},
	}.ToEvent(TabMeeting, "m1", "2025-05-19", now)
	if m.Category != CategoryMeeting || m.Time != "" || m.StartTime != "2:00 PM" || m.Participants[0] != "a@example.com" {
		t.Errorf("Unexpected meeting: %+v", m)
	}
	if !m.CreatedAt.Equal(now) {
		t.Errorf("Expected CreatedAt %v, got %v", now, m.CreatedAt)
	}
}

func TestParseTab(t *testing.T) {
	for in, want := range map[string]Tab{"": TabTask, "Task": TabTask, "EVENT": TabEvent, " meeting ": TabMeeting} {
		got, err := ParseTab(in)
		if err != nil || got != want {
			t.Errorf("ParseTab(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTab("reminder"); err == nil {
		t.Error("Expected an error for an unknown tab")
	}
}

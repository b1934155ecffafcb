package calendar

import (
	"context"
	"errors"
	"testing"

	"github.com/office-admin/dashboard/internal/storage/models"
)

type stubSource struct {
	events []models.CalendarEvent
	err    error
}

func (s stubSource) ListCalendarEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	return s.events, s.err
}

type memoryStore struct {
	events map[string]models.CalendarEvent
}

func (m *memoryStore) UpsertEvent(ctx context.Context, collection string, ev models.CalendarEvent) (bool, error) {
	if m.events == nil {
		m.events = make(map[string]models.CalendarEvent)
	}
	_, exists := m.events[ev.ID]
	m.events[ev.ID] = ev
	return !exists, nil
}

func TestSyncUpsertsBackendEvents(t *testing.T) {
	source := stubSource{events: []models.CalendarEvent{
		{ID: "b1", Title: "Board meeting", Date: "2025-05-19", Category: CategoryMeeting},
		{Title: "Payroll", Date: "2025-05-30", Category: CategoryDeadline},
		{Title: "No date", Category: CategoryOther},
	}}
	store := &memoryStore{}
	svc := NewSyncService(source, store)

	result, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.EventsFound != 3 || result.EventsCreated != 2 || result.EventsUpdated != 0 {
		t.Errorf("Unexpected first result: %+v", result)
	}

	result, err = svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}
	if result.EventsCreated != 0 || result.EventsUpdated != 2 {
		t.Errorf("Expected repeated pull to update in place, got %+v", result)
	}
	if len(store.events) != 2 {
		t.Errorf("Expected 2 stored events, got %d", len(store.events))
	}
}

func TestSyncErrors(t *testing.T) {
	if _, err := NewSyncService(nil, &memoryStore{}).Sync(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}

	boom := errors.New("backend down")
	result, err := NewSyncService(stubSource{err: boom}, &memoryStore{}).Sync(context.Background())
	if !errors.Is(err, boom) || result.Error == nil {
		t.Errorf("Expected wrapped backend error, got %v", err)
	}
}

type recordingListener struct {
	completed []models.CalendarSyncResult
	failed    []error
}

func (r *recordingListener) BroadcastCalendarSyncCompleted(result models.CalendarSyncResult) {
	r.completed = append(r.completed, result)
}

func (r *recordingListener) BroadcastCalendarSyncError(err error) {
	r.failed = append(r.failed, err)
}

func TestSchedulerTriggerSync(t *testing.T) {
	listener := &recordingListener{}
	source := stubSource{events: []models.CalendarEvent{{ID: "x", Title: "X", Date: "2025-05-19"}}}
	s := NewScheduler(NewSyncService(source, &memoryStore{}), listener, 0)

	if _, err := s.TriggerSync(context.Background()); err != nil {
		t.Fatalf("TriggerSync failed: %v", err)
	}
	if len(listener.completed) != 1 || listener.completed[0].EventsCreated != 1 {
		t.Errorf("Expected one completed broadcast, got %+v", listener.completed)
	}
	if last := s.LastSync(); last == nil || last.EventsFound != 1 {
		t.Errorf("Unexpected last sync: %+v", last)
	}
	if s.NextSync() != nil {
		t.Error("Expected no next sync before Start")
	}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()
	if s.NextSync() == nil {
		t.Error("Expected a next sync after Start")
	}
}

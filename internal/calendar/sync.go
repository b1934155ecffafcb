package calendar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// ErrNoSource is returned when no calendar backend is configured.
var ErrNoSource = errors.New("no calendar source configured")

// EventSource is anything that can list calendar events, normally the
// admin backend's /admin/calendar/user endpoint.
type EventSource interface {
	ListCalendarEvents(ctx context.Context) ([]models.CalendarEvent, error)
}

// EventStore persists pulled events.
type EventStore interface {
	UpsertEvent(ctx context.Context, collection string, ev models.CalendarEvent) (bool, error)
}

// SyncService pulls calendar events from the backend into the store.
type SyncService struct {
	source EventSource
	store  EventStore
	now    func() time.Time
}

// NewSyncService creates a new calendar sync service. A nil source makes
// every sync fail with ErrNoSource.
func NewSyncService(source EventSource, store EventStore) *SyncService {
	return &SyncService{
		source: source,
		store:  store,
		now:    time.Now,
	}
}

// Enabled reports whether a backend source is configured.
func (s *SyncService) Enabled() bool {
	return s.source != nil
}

// Sync fetches every event and upserts it into the calendarEvents collection.
// Events without a usable date are skipped.
func (s *SyncService) Sync(ctx context.Context) (*models.CalendarSyncResult, error) {
	result := &models.CalendarSyncResult{
		Collection: models.CollectionCalendarEvents,
		SyncedAt:   s.now().UTC(),
	}
	if s.source == nil {
		result.Error = ErrNoSource
		return result, ErrNoSource
	}

	events, err := s.source.ListCalendarEvents(ctx)
	if err != nil {
		result.Error = fmt.Errorf("fetching calendar events: %w", err)
		return result, result.Error
	}
	result.EventsFound = len(events)

	for _, ev := range events {
		if _, err := ParseDateKey(ev.Date); err != nil {
			log.Printf("Skipping backend event %q: %v", ev.Title, err)
			continue
		}
		if ev.ID == "" {
			ev.ID = SyncedEventID(ev)
		}
		if ev.CreatedAt.IsZero() {
			ev.CreatedAt = result.SyncedAt
		}

		created, err := s.store.UpsertEvent(ctx, models.CollectionCalendarEvents, ev)
		if err != nil {
			log.Printf("Error storing backend event %s: %v", ev.ID, err)
			continue
		}
		if created {
			result.EventsCreated++
		} else {
			result.EventsUpdated++
		}
	}

	return result, nil
}

// SyncedEventID derives a stable ID for a backend event that has none, so
// repeated pulls update instead of duplicating.
func SyncedEventID(ev models.CalendarEvent) string {
	name := strings.Join([]string{ev.Date, ev.Category, ev.Title, ev.Time, ev.StartTime}, "|")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

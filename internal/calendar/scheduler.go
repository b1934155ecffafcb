package calendar

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// DefaultSyncInterval is used when no interval is configured.
const DefaultSyncInterval = 15 * time.Minute

// SyncListener receives the outcome of every scheduled or triggered sync.
type SyncListener interface {
	BroadcastCalendarSyncCompleted(result models.CalendarSyncResult)
	BroadcastCalendarSyncError(err error)
}

// Scheduler runs the periodic pull from the admin backend.
type Scheduler struct {
	cron        *cron.Cron
	syncService *SyncService
	listener    SyncListener
	interval    time.Duration

	entry   cron.EntryID
	entryMu sync.RWMutex

	last   *models.CalendarSyncResult
	lastMu sync.RWMutex
}

// NewScheduler creates a new calendar sync scheduler.
func NewScheduler(syncService *SyncService, listener SyncListener, interval time.Duration) *Scheduler {
	if interval < time.Minute {
		interval = DefaultSyncInterval
	}

	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		syncService: syncService,
		listener:    listener,
		interval:    interval,
	}
}

// Start schedules the periodic sync. Nothing is scheduled without a source.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.syncService.Enabled() {
		log.Println("Calendar sync disabled: no admin backend configured")
		return nil
	}

	log.Println("Starting calendar sync scheduler...")
	id, err := s.cron.AddFunc("@every "+s.interval.String(), func() {
		s.sync(context.Background())
	})
	if err != nil {
		return err
	}

	s.entryMu.Lock()
	s.entry = id
	s.entryMu.Unlock()

	s.cron.Start()
	log.Printf("Calendar scheduler started, syncing every %s", s.interval)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	log.Println("Stopping calendar sync scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Calendar scheduler stopped")
}

// TriggerSync runs a sync immediately and returns its result.
func (s *Scheduler) TriggerSync(ctx context.Context) (*models.CalendarSyncResult, error) {
	return s.sync(ctx)
}

// NextSync returns the next scheduled run, or nil when nothing is scheduled.
func (s *Scheduler) NextSync() *time.Time {
	s.entryMu.RLock()
	defer s.entryMu.RUnlock()

	if s.entry == 0 {
		return nil
	}
	entry := s.cron.Entry(s.entry)
	if entry.Next.IsZero() {
		return nil
	}
	return &entry.Next
}

// LastSync returns the most recent result, if any.
func (s *Scheduler) LastSync() *models.CalendarSyncResult {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	return s.last
}

func (s *Scheduler) sync(ctx context.Context) (*models.CalendarSyncResult, error) {
	log.Println("Syncing calendar events from admin backend")

	result, err := s.syncService.Sync(ctx)

	s.lastMu.Lock()
	s.last = result
	s.lastMu.Unlock()

	if err != nil {
		log.Printf("Calendar sync failed: %v", err)
		if s.listener != nil {
			s.listener.BroadcastCalendarSyncError(err)
		}
		return result, err
	}

	log.Printf("Calendar sync completed: %d events, %d created, %d updated",
		result.EventsFound, result.EventsCreated, result.EventsUpdated)

	if s.listener != nil {
		s.listener.BroadcastCalendarSyncCompleted(*result)
	}
	return result, nil
}

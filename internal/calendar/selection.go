package calendar

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// State is the day selection / modal state of one screen.
type State string

const (
	StateIdle           State = "idle"
	StateHovering       State = "hovering"
	StateDayDetailOpen  State = "day_detail_open"
	StateCreateFormOpen State = "create_form_open"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrScreenClosed is returned after the screen has been unmounted.
	ErrScreenClosed = errors.New("screen closed")
)

// Snapshot is a copy of a screen's state.
type Snapshot struct {
	State    State  `json:"state"`
	DateKey  string `json:"dateKey,omitempty"`
	Tab      Tab    `json:"tab,omitempty"`
	EmptyDay bool   `json:"emptyDay,omitempty"`
	Draft    *Draft `json:"draft,omitempty"`
}

// Selection is one screen's state machine. Screens never share one.
type Selection struct {
	mu       sync.Mutex
	state    State
	dateKey  string
	tab      Tab
	emptyDay bool
	formDate string
	draft    Draft
	closed   bool

	// hoverGen changes on every HoverEnter; a timer only closes its own hover.
	hoverGen uint64
	// pending is the event id built by Prepare and not yet committed.
	pending string

	closer   *AutoCloser
	onChange func(Snapshot)
}

// NewSelection creates an idle screen. onChange, if set, is called after
// every transition, including the hover auto-close.
func NewSelection(autoClose time.Duration, onChange func(Snapshot)) *Selection {
	return &Selection{
		state:    StateIdle,
		closer:   NewAutoCloser(autoClose),
		onChange: onChange,
	}
}

// Snapshot returns the current state.
func (s *Selection) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Selection) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state}
	switch s.state {
	case StateHovering:
		snap.DateKey = s.dateKey
	case StateDayDetailOpen:
		snap.DateKey = s.dateKey
		snap.EmptyDay = s.emptyDay
	case StateCreateFormOpen:
		snap.DateKey = s.formDate
		snap.Tab = s.tab
		d := s.draft
		d.Participants = append([]string(nil), s.draft.Participants...)
		snap.Draft = &d
	}
	return snap
}

// transition runs fn under the lock and publishes the resulting snapshot
// when fn reports a change.
func (s *Selection) transition(fn func() (bool, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrScreenClosed
	}
	changed, err := fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if changed && s.onChange != nil {
		s.onChange(snap)
	}
	return nil
}

func (s *Selection) invalid(action string) error {
	return fmt.Errorf("%s from %s: %w", action, s.state, ErrInvalidTransition)
}

// HoverEnter moves Idle or Hovering to Hovering(dateKey) and restarts the
// auto-close timer. It is ignored while a modal is open.
func (s *Selection) HoverEnter(dateKey string) error {
	if _, err := ParseDateKey(dateKey); err != nil {
		return err
	}
	return s.transition(func() (bool, error) {
		if s.state != StateIdle && s.state != StateHovering {
			return false, nil
		}
		s.state = StateHovering
		s.dateKey = dateKey
		s.hoverGen++
		gen := s.hoverGen
		s.closer.Arm(func() { s.autoClose(gen) })
		return true, nil
	})
}

// HoverLeave returns Hovering to Idle.
func (s *Selection) HoverLeave() error {
	return s.transition(func() (bool, error) {
		if s.state != StateHovering {
			return false, nil
		}
		s.closer.Disarm()
		s.toIdle()
		return true, nil
	})
}

func (s *Selection) autoClose(gen uint64) {
	_ = s.transition(func() (bool, error) {
		if s.state != StateHovering || s.hoverGen != gen {
			return false, nil
		}
		s.toIdle()
		return true, nil
	})
}

// OpenDay opens the day-detail modal. eventCount decides whether the modal
// offers the direct "Add Event" action.
func (s *Selection) OpenDay(dateKey string, eventCount int) error {
	if _, err := ParseDateKey(dateKey); err != nil {
		return err
	}
	return s.transition(func() (bool, error) {
		if s.state != StateIdle && s.state != StateHovering {
			return false, s.invalid("open day")
		}
		s.closer.Disarm()
		s.state = StateDayDetailOpen
		s.dateKey = dateKey
		s.emptyDay = eventCount == 0
		return true, nil
	})
}

// CloseDetail closes the day-detail modal (close button or backdrop).
func (s *Selection) CloseDetail() error {
	return s.transition(func() (bool, error) {
		if s.state != StateDayDetailOpen {
			return false, s.invalid("close detail")
		}
		s.toIdle()
		return true, nil
	})
}

// OpenCreate opens the creation modal on tab. Opening from a day detail
// carries that day into the draft.
func (s *Selection) OpenCreate(tab Tab) error {
	return s.transition(func() (bool, error) {
		switch s.state {
		case StateIdle:
			s.formDate = ""
		case StateDayDetailOpen:
			s.formDate = s.dateKey
		default:
			return false, s.invalid("open create form")
		}
		s.openForm(tab)
		return true, nil
	})
}

// AddEvent is the empty-day shortcut from the day detail to the create form.
func (s *Selection) AddEvent() error {
	return s.transition(func() (bool, error) {
		if s.state != StateDayDetailOpen || !s.emptyDay {
			return false, s.invalid("add event")
		}
		s.formDate = s.dateKey
		s.openForm(TabTask)
		return true, nil
	})
}

func (s *Selection) openForm(tab Tab) {
	if tab == "" {
		tab = TabTask
	}
	s.state = StateCreateFormOpen
	s.tab = tab
	s.draft = Draft{Date: s.formDate}
	s.emptyDay = false
	s.pending = ""
}

// SwitchTab changes the form without closing the modal or losing the draft.
func (s *Selection) SwitchTab(tab Tab) error {
	return s.transition(func() (bool, error) {
		if s.state != StateCreateFormOpen {
			return false, s.invalid("switch tab")
		}
		if s.tab == tab {
			return false, nil
		}
		s.tab = tab
		return true, nil
	})
}

// UpdateDraft replaces the draft of the open form.
func (s *Selection) UpdateDraft(d Draft) error {
	return s.transition(func() (bool, error) {
		if s.state != StateCreateFormOpen {
			return false, s.invalid("update draft")
		}
		s.draft = d
		s.pending = ""
		return true, nil
	})
}

// Cancel discards the draft and closes the form.
func (s *Selection) Cancel() error {
	return s.transition(func() (bool, error) {
		if s.state != StateCreateFormOpen {
			return false, s.invalid("cancel")
		}
		s.toIdle()
		return true, nil
	})
}

// Submit validates the draft (replaced by d when non-nil) and, on success,
// converts it to an event, discards the draft and returns to Idle. On a
// validation failure the form stays open with the draft intact.
func (s *Selection) Submit(d *Draft, id, today string, now time.Time) (models.CalendarEvent, Tab, error) {
	ev, tab, err := s.Prepare(d, id, today, now)
	if err != nil {
		return ev, tab, err
	}
	return ev, tab, s.Commit(id)
}

// Prepare validates the draft (replaced by d when non-nil) and builds the
// event without leaving the form. The caller persists the event and then
// calls Commit; if persisting fails the form and draft are still there.
func (s *Selection) Prepare(d *Draft, id, today string, now time.Time) (models.CalendarEvent, Tab, error) {
	var ev models.CalendarEvent
	var tab Tab
	err := s.transition(func() (bool, error) {
		if s.state != StateCreateFormOpen {
			return false, s.invalid("submit")
		}
		changed := false
		if d != nil {
			s.draft = *d
			changed = true
		}
		if s.draft.Date == "" {
			s.draft.Date = s.formDate
		}
		if err := s.draft.Validate(s.tab); err != nil {
			return changed, err
		}

		tab = s.tab
		ev = s.draft.ToEvent(tab, id, today, now)
		s.pending = id
		return changed, nil
	})
	return ev, tab, err
}

// Commit discards the draft and returns to Idle once the event built by
// Prepare under id has been saved. It fails if the form was cancelled,
// reopened or edited in between.
func (s *Selection) Commit(id string) error {
	return s.transition(func() (bool, error) {
		if s.state != StateCreateFormOpen || s.pending == "" || s.pending != id {
			return false, s.invalid("commit")
		}
		s.toIdle()
		return true, nil
	})
}

// Close unmounts the screen: the auto-close timer is cancelled for good and
// every later action fails with ErrScreenClosed.
func (s *Selection) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closer.Stop()
	s.closed = true
}

func (s *Selection) toIdle() {
	s.state = StateIdle
	s.dateKey = ""
	s.tab = ""
	s.emptyDay = false
	s.formDate = ""
	s.draft = Draft{}
	s.pending = ""
}

package calendar

import (
	"sync"
	"time"
)

// DefaultAutoClose is the safety-net delay after which a hover popover closes
// even if no pointer-leave arrived.
const DefaultAutoClose = 3 * time.Second

// AutoCloser is a cancellable one-shot timer tied to a component's lifetime.
// Re-arming supersedes the pending callback; a superseded or disarmed
// callback never runs.
type AutoCloser struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewAutoCloser creates a disarmed closer; a non-positive delay uses DefaultAutoClose.
func NewAutoCloser(delay time.Duration) *AutoCloser {
	if delay <= 0 {
		delay = DefaultAutoClose
	}
	return &AutoCloser{delay: delay}
}

// Arm cancels any pending callback and schedules fn after the delay.
// It is a no-op once the closer has been stopped.
func (a *AutoCloser) Arm(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() {
		a.mu.Lock()
		if a.stopped || a.gen != gen {
			a.mu.Unlock()
			return
		}
		a.timer = nil
		a.mu.Unlock()
		fn()
	})
}

// Disarm cancels the pending callback, if any.
func (a *AutoCloser) Disarm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.disarmLocked()
}

// Stop disarms and refuses further arming.
func (a *AutoCloser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.disarmLocked()
	a.stopped = true
}

// Armed reports whether a callback is pending.
func (a *AutoCloser) Armed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

func (a *AutoCloser) disarmLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
}

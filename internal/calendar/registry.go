package calendar

import (
	"sort"
	"sync"
	"time"
)

// Registry holds one Selection per mounted screen.
type Registry struct {
	mu        sync.Mutex
	screens   map[string]*Selection
	autoClose time.Duration
	onChange  func(screen string, snap Snapshot)
}

// NewRegistry creates an empty registry. onChange receives every transition
// of every screen it creates.
func NewRegistry(autoClose time.Duration, onChange func(screen string, snap Snapshot)) *Registry {
	return &Registry{
		screens:   make(map[string]*Selection),
		autoClose: autoClose,
		onChange:  onChange,
	}
}

// Get returns the screen's state machine, mounting it on first use.
func (r *Registry) Get(screen string) *Selection {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sel, ok := r.screens[screen]; ok {
		return sel
	}

	var notify func(Snapshot)
	if r.onChange != nil {
		notify = func(snap Snapshot) { r.onChange(screen, snap) }
	}
	sel := NewSelection(r.autoClose, notify)
	r.screens[screen] = sel
	return sel
}

// Lookup returns a mounted screen without creating it.
func (r *Registry) Lookup(screen string) (*Selection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sel, ok := r.screens[screen]
	return sel, ok
}

// Remove unmounts a screen, cancelling its timers.
func (r *Registry) Remove(screen string) bool {
	r.mu.Lock()
	sel, ok := r.screens[screen]
	delete(r.screens, screen)
	r.mu.Unlock()

	if ok {
		sel.Close()
	}
	return ok
}

// CloseAll unmounts every screen.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	screens := r.screens
	r.screens = make(map[string]*Selection)
	r.mu.Unlock()

	for _, sel := range screens {
		sel.Close()
	}
}

// Screens returns the mounted screen names, sorted.
func (r *Registry) Screens() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.screens))
	for name := range r.screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

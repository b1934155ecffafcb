// Package notify holds the dashboard's toast queue: the single place any
// component reports success or failure to the user.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is a toast's severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Defaults for NewQueue.
const (
	DefaultCapacity = 20
	DefaultTTL      = 4 * time.Second
)

// GenericFailure is shown when an error carries no usable message.
const GenericFailure = "Something went wrong. Please try again."

// Toast is one transient notification.
type Toast struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Kind    Kind      `json:"kind"`
	Expiry  time.Time `json:"expiry"`
}

// PublishFunc receives every toast as it is queued.
type PublishFunc func(Toast)

// Queue is a bounded FIFO of live toasts. When full, the oldest is dropped.
type Queue struct {
	mu       sync.Mutex
	items    []Toast
	capacity int
	ttl      time.Duration
	now      func() time.Time
	publish  PublishFunc
}

// NewQueue creates a queue; non-positive arguments use the defaults.
func NewQueue(capacity int, ttl time.Duration) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnPublish sets the function each new toast is handed to.
func (q *Queue) OnPublish(fn PublishFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.publish = fn
}

// Notify queues a toast and returns it.
func (q *Queue) Notify(kind Kind, message string) Toast {
	if message == "" {
		message = GenericFailure
	}

	q.mu.Lock()
	t := Toast{
		ID:      uuid.NewString(),
		Message: message,
		Kind:    kind,
		Expiry:  q.now().Add(q.ttl),
	}
	if len(q.items) >= q.capacity {
		q.items = q.items[len(q.items)-q.capacity+1:]
	}
	q.items = append(q.items, t)
	publish := q.publish
	q.mu.Unlock()

	if publish != nil {
		publish(t)
	}
	return t
}

// Success queues a success toast.
func (q *Queue) Success(message string) Toast {
	return q.Notify(KindSuccess, message)
}

// Error queues an error toast.
func (q *Queue) Error(message string) Toast {
	return q.Notify(KindError, message)
}

// Info queues an informational toast.
func (q *Queue) Info(message string) Toast {
	return q.Notify(KindInfo, message)
}

// Active returns the toasts that have not expired, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	out := make([]Toast, 0, len(q.items))
	for _, t := range q.items {
		if now.Before(t.Expiry) {
			out = append(out, t)
		}
	}
	return out
}

// Dismiss removes a toast early.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Prune drops expired toasts and returns how many were removed.
func (q *Queue) Prune() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Before(t.Expiry) {
			kept = append(kept, t)
		}
	}
	removed := len(q.items) - len(kept)
	q.items = kept
	return removed
}

// Len returns the number of queued toasts, expired or not.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Fail queues an error toast for err, falling back to GenericFailure.
func (q *Queue) Fail(err error) Toast {
	if err == nil {
		return q.Error("")
	}
	return q.Error(err.Error())
}

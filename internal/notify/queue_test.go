package notify

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestQueue(capacity int, ttl time.Duration) (*Queue, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 5, 19, 9, 0, 0, 0, time.UTC)}
	q := NewQueue(capacity, ttl)
	q.now = clock.now
	return q, clock
}

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q, _ := newTestQueue(2, time.Minute)

	q.Info("one")
	q.Info("two")
	q.Info("three")

	active := q.Active()
	if len(active) != 2 {
		t.Fatalf("Expected 2 toasts, got %d", len(active))
	}
	if active[0].Message != "two" || active[1].Message != "three" {
		t.Errorf("Expected [two three], got [%s %s]", active[0].Message, active[1].Message)
	}
}

func TestQueueExpiryAndPrune(t *testing.T) {
	q, clock := newTestQueue(10, 4*time.Second)

	q.Success("Task added")
	clock.t = clock.t.Add(2 * time.Second)
	q.Error("Failed to save profile")

	clock.t = clock.t.Add(3 * time.Second)
	active := q.Active()
	if len(active) != 1 || active[0].Kind != KindError {
		t.Fatalf("Expected only the error toast to be live, got %+v", active)
	}

	if n := q.Prune(); n != 1 {
		t.Errorf("Expected 1 pruned, got %d", n)
	}
	if q.Len() != 1 {
		t.Errorf("Expected 1 queued after prune, got %d", q.Len())
	}
}

func TestQueuePublishAndDismiss(t *testing.T) {
	q, _ := newTestQueue(10, time.Minute)

	var published []Toast
	q.OnPublish(func(t Toast) { published = append(published, t) })

	toast := q.Error("")
	if toast.Message != GenericFailure {
		t.Errorf("Expected generic fallback message, got %q", toast.Message)
	}
	if len(published) != 1 || published[0].ID != toast.ID {
		t.Fatalf("Expected toast to be published once, got %+v", published)
	}

	if !q.Dismiss(toast.ID) {
		t.Error("Expected dismiss to succeed")
	}
	if q.Dismiss(toast.ID) {
		t.Error("Expected second dismiss to fail")
	}
}

func TestQueueFail(t *testing.T) {
	q, _ := newTestQueue(10, time.Minute)

	if toast := q.Fail(errors.New("Image must be 5 MB or smaller")); toast.Kind != KindError || toast.Message != "Image must be 5 MB or smaller" {
		t.Errorf("Expected the error message as an error toast, got %+v", toast)
	}
	if toast := q.Fail(nil); toast.Message != GenericFailure {
		t.Errorf("Expected generic fallback for a nil error, got %q", toast.Message)
	}
}

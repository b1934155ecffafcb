package notify

import (
	"log"

	"github.com/robfig/cron/v3"
)

// PruneSpec is how often expired toasts are swept.
const PruneSpec = "@every 1s"

// Janitor periodically prunes a queue's expired toasts.
type Janitor struct {
	cron  *cron.Cron
	queue *Queue
}

// NewJanitor creates a janitor for q.
func NewJanitor(q *Queue) *Janitor {
	return &Janitor{
		cron:  cron.New(cron.WithSeconds()),
		queue: q,
	}
}

// Start schedules the sweep.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(PruneSpec, j.sweep); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop waits for a running sweep and stops the schedule.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) sweep() {
	if n := j.queue.Prune(); n > 0 {
		log.Printf("Pruned %d expired notifications", n)
	}
}

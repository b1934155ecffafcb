package storage

import (
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// ChangeFunc is called after every successful store mutation.
type ChangeFunc func(change models.StoreChange)

type changeFeed struct {
	mu   sync.RWMutex
	subs []ChangeFunc
}

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	db   *DB
	feed *changeFeed
}

// NewBaseRepository creates a new base repository with the given database connection.
func NewBaseRepository(db *DB) BaseRepository {
	return BaseRepository{db: db, feed: &changeFeed{}}
}

// DB returns the underlying database connection.
func (r *BaseRepository) DB() *DB {
	return r.db
}

// Now returns the current time in UTC for database timestamps.
func (r *BaseRepository) Now() time.Time {
	return time.Now().UTC()
}

// Transaction executes a function within a database transaction.
func (r *BaseRepository) Transaction(fn func(tx *sql.Tx) error) error {
	return r.db.Transaction(fn)
}

// Subscribe registers fn to be notified of every mutation. Subscribers run
// synchronously on the mutating goroutine and must not block.
func (r *BaseRepository) Subscribe(fn ChangeFunc) {
	r.feed.mu.Lock()
	defer r.feed.mu.Unlock()
	r.feed.subs = append(r.feed.subs, fn)
}

func (r *BaseRepository) publish(change models.StoreChange) {
	r.feed.mu.RLock()
	subs := make([]ChangeFunc, len(r.feed.subs))
	copy(subs, r.feed.subs)
	r.feed.mu.RUnlock()

	for _, fn := range subs {
		fn(change)
	}
}

// GenerateID creates a new UUID for use as a primary key.
func GenerateID() string {
	return uuid.NewString()
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// StoreRepository provides data access for store collections and settings.
// It is the single source of truth the dashboard screens read from.
type StoreRepository struct {
	BaseRepository
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *DB) *StoreRepository {
	return &StoreRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// List returns every item in a collection in insertion order.
func (r *StoreRepository) List(ctx context.Context, collection string) ([]models.StoreItem, error) {
	rows, err := r.DB().QueryContext(ctx, `
		SELECT collection, id, COALESCE(date_key, ''), payload, created_at, updated_at
		FROM store_items
		WHERE collection = ?
		ORDER BY rowid
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", collection, err)
	}
	defer rows.Close()

	var items []models.StoreItem
	for rows.Next() {
		var item models.StoreItem
		var payload string
		if err := rows.Scan(
			&item.Collection, &item.ID, &item.DateKey, &payload,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning store item: %w", err)
		}
		item.Payload = json.RawMessage(payload)
		items = append(items, item)
	}

	return items, rows.Err()
}

// Append inserts a new item into a collection. An empty ID is assigned.
func (r *StoreRepository) Append(ctx context.Context, item *models.StoreItem) error {
	if item.ID == "" {
		item.ID = GenerateID()
	}
	if len(item.Payload) == 0 {
		item.Payload = json.RawMessage("{}")
	}
	item.CreatedAt = r.Now()
	item.UpdatedAt = item.CreatedAt

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO store_items (collection, id, date_key, payload, created_at, updated_at)
		VALUES (?, ?, NULLIF(?, ''), ?, ?, ?)
	`,
		item.Collection, item.ID, item.DateKey, string(item.Payload),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", item.Collection, err)
	}

	r.publish(models.StoreChange{Collection: item.Collection, Op: models.ChangeAppend, ID: item.ID})
	return nil
}

// Upsert inserts the item or replaces the payload of an existing item with
// the same ID. It reports whether a new row was created.
func (r *StoreRepository) Upsert(ctx context.Context, item *models.StoreItem) (bool, error) {
	if item.ID == "" {
		return false, errors.New("upsert requires an id")
	}

	var created bool
	err := r.Transaction(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM store_items WHERE collection = ? AND id = ?",
			item.Collection, item.ID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking %s/%s: %w", item.Collection, item.ID, err)
		}
		created = exists == 0

		now := r.Now()
		item.UpdatedAt = now
		if created {
			item.CreatedAt = now
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO store_items (collection, id, date_key, payload, created_at, updated_at)
			VALUES (?, ?, NULLIF(?, ''), ?, ?, ?)
			ON CONFLICT(collection, id) DO UPDATE SET
				date_key = excluded.date_key,
				payload = excluded.payload,
				updated_at = excluded.updated_at
		`,
			item.Collection, item.ID, item.DateKey, string(item.Payload), now, now,
		)
		if err != nil {
			return fmt.Errorf("upserting %s/%s: %w", item.Collection, item.ID, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	r.publish(models.StoreChange{Collection: item.Collection, Op: models.ChangeUpsert, ID: item.ID})
	return created, nil
}

// Remove deletes one item by ID.
func (r *StoreRepository) Remove(ctx context.Context, collection, id string) error {
	result, err := r.DB().ExecContext(ctx,
		"DELETE FROM store_items WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}

	r.publish(models.StoreChange{Collection: collection, Op: models.ChangeRemove, ID: id})
	return nil
}

// Reset removes every item in a collection and returns how many were removed.
func (r *StoreRepository) Reset(ctx context.Context, collection string) (int64, error) {
	result, err := r.DB().ExecContext(ctx, "DELETE FROM store_items WHERE collection = ?", collection)
	if err != nil {
		return 0, fmt.Errorf("resetting %s: %w", collection, err)
	}

	n, _ := result.RowsAffected()
	r.publish(models.StoreChange{Collection: collection, Op: models.ChangeReset})
	return n, nil
}

// AppendEvent stores a calendar event in one of the event collections.
func (r *StoreRepository) AppendEvent(ctx context.Context, collection string, ev *models.CalendarEvent) error {
	if !models.IsEventCollection(collection) {
		return fmt.Errorf("collection %q does not hold calendar events", collection)
	}
	if ev.ID == "" {
		ev.ID = GenerateID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = r.Now()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	return r.Append(ctx, &models.StoreItem{
		Collection: collection,
		ID:         ev.ID,
		DateKey:    ev.Date,
		Payload:    payload,
	})
}

// UpsertEvent stores or replaces a calendar event, keyed by its ID.
func (r *StoreRepository) UpsertEvent(ctx context.Context, collection string, ev models.CalendarEvent) (bool, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return false, fmt.Errorf("encoding event: %w", err)
	}

	return r.Upsert(ctx, &models.StoreItem{
		Collection: collection,
		ID:         ev.ID,
		DateKey:    ev.Date,
		Payload:    payload,
	})
}

// ListEvents decodes the calendar events held in the given collections, in
// collection order and then insertion order. With no collections every
// event collection is read. Items that do not decode as events are skipped.
func (r *StoreRepository) ListEvents(ctx context.Context, collections ...string) ([]models.CalendarEvent, error) {
	if len(collections) == 0 {
		collections = models.EventCollections
	}

	var events []models.CalendarEvent
	for _, c := range collections {
		items, err := r.List(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			var ev models.CalendarEvent
			if err := json.Unmarshal(item.Payload, &ev); err != nil {
				log.Printf("Skipping undecodable event %s/%s: %v", c, item.ID, err)
				continue
			}
			if ev.ID == "" {
				ev.ID = item.ID
			}
			events = append(events, ev)
		}
	}

	return events, nil
}

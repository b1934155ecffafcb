package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// GetSetting returns the value of a scalar setting such as the theme.
func (r *StoreRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB().QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting writes a scalar setting, last write wins.
func (r *StoreRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("updating setting %s: %w", key, err)
	}

	r.publish(models.StoreChange{Collection: key, Op: models.ChangeSet})
	return nil
}

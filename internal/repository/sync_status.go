package repository

import (
	"context"
	"fmt"
	"time"
)

// SaveSyncStatus saves the time and size of the last successful roster sync.
func (r *Repository) SaveSyncStatus(ctx context.Context, syncedAt time.Time, employeeCount int) error {
	defer r.observe("save_sync_status", time.Now())

	query := `
		INSERT INTO sync_status (id, last_synced_at, employee_count)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET last_synced_at = $1, employee_count = $2, updated_at = CURRENT_TIMESTAMP;`

	_, err := r.db.Exec(ctx, query, syncedAt, employeeCount)
	if err != nil {
		return fmt.Errorf("failed to execute insert query: %w", err)
	}

	return nil
}

// GetLastSyncTime returns the time of the last successful roster sync.
func (r *Repository) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	defer r.observe("get_last_sync_time", time.Now())

	query := "SELECT last_synced_at FROM sync_status ORDER BY updated_at DESC LIMIT 1"

	var lastSync time.Time

	err := r.db.QueryRow(ctx, query).Scan(&lastSync)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync time from table sync_status: %w", err)
	}

	return lastSync, nil
}

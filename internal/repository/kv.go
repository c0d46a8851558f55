package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrEntryNotFound is returned when no entry is stored under the requested name.
var ErrEntryNotFound = errors.New("entry not found")

// GetEntry returns the JSON document stored under name.
func (r *Repository) GetEntry(ctx context.Context, name string) ([]byte, error) {
	defer r.observe("get_entry", time.Now())

	query := `SELECT value FROM kv_store WHERE name = $1`

	var value []byte

	err := r.db.QueryRow(ctx, query, name).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
		}
		return nil, fmt.Errorf("failed to get entry %s: %w", name, err)
	}

	return value, nil
}

// PutEntry inserts or replaces the JSON document stored under name.
func (r *Repository) PutEntry(ctx context.Context, name string, value []byte) error {
	defer r.observe("put_entry", time.Now())

	query := `
		INSERT INTO kv_store (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP;
	`

	_, err := r.db.Exec(ctx, query, name, value)
	if err != nil {
		return fmt.Errorf("failed to put entry %s: %w", name, err)
	}

	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/UnknownOlympus/athena/internal/metrics"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// KVRepoIface stores named JSON documents. It backs the bookmark store.
type KVRepoIface interface {
	GetEntry(ctx context.Context, name string) ([]byte, error)
	PutEntry(ctx context.Context, name string, value []byte) error
}

func NewKVRepository(db Database, metrics *metrics.Metrics) KVRepoIface {
	return &Repository{db: db, metrics: metrics}
}

// StatusRepoIface records the outcome of roster synchronisation.
type StatusRepoIface interface {
	SaveSyncStatus(ctx context.Context, syncedAt time.Time, employeeCount int) error
	GetLastSyncTime(ctx context.Context) (time.Time, error)
}

func NewStatusRepository(db Database, metrics *metrics.Metrics) StatusRepoIface {
	return &Repository{db: db, metrics: metrics}
}

func (r *Repository) observe(queryType string, startTime time.Time) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It covers the roster synchronisation loop, the bookmark store, database
// queries and the HTTP surface.
type Metrics struct {
	SyncRuns                *prometheus.CounterVec
	ItemsFetched            *prometheus.CounterVec
	LastSuccessfulSync      prometheus.Gauge
	SyncDuration            prometheus.Histogram
	RosterSize              prometheus.Gauge
	BookmarkOps             *prometheus.CounterVec
	BookmarkPersistFailures prometheus.Counter
	DBQueryDuration         *prometheus.HistogramVec
	HTTPRequests            *prometheus.CounterVec
	HTTPRequestDuration     *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		SyncRuns: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_sync_runs_total",
			Help: "Total times the roster sync has successfully or unsuccessfully completed.",
		}, []string{"status"}),
		ItemsFetched: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_items_fetched_total",
			Help: "Total number of records decoded from the upstream user API.",
		}, []string{"type"}),
		LastSuccessfulSync: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "athena_last_successful_sync_timestamp",
			Help: "Unix time of the last successful roster sync.",
		}),
		SyncDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "athena_sync_duration_seconds",
			Help: "Measures how long a full roster sync takes.",
		}),
		RosterSize: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "athena_roster_size",
			Help: "Number of employees currently held in memory.",
		}),
		BookmarkOps: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_bookmark_operations_total",
			Help: "Bookmark store operations that changed the stored set.",
		}, []string{"op"}),
		BookmarkPersistFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "athena_bookmark_persist_failures_total",
			Help: "Total number of failed attempts to persist the bookmark set.",
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "athena_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'get_entry', 'put_entry', 'save_sync_status'
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_http_requests_total",
			Help: "HTTP requests served, by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "athena_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	metrics.SyncRuns.WithLabelValues("success")
	metrics.SyncRuns.WithLabelValues("failure")

	return metrics
}

package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/UnknownOlympus/athena/internal/demo"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/parser"
	"github.com/UnknownOlympus/athena/internal/repository"
)

// ErrNotLoaded is returned while no roster has been fetched successfully.
var ErrNotLoaded = errors.New("employee list is not available")

// Rater draws a performance rating in the rating scale.
type Rater func() int

// RandomRater draws ratings uniformly.
func RandomRater() int {
	return rand.IntN(models.MaxRating) + models.MinRating //nolint:gosec // demo ratings
}

// Directory keeps the in-memory employee roster fetched from the upstream API.
// Each employee ID gets its performance rating once; later fetches reuse it.
type Directory struct {
	log        *slog.Logger
	parser     parser.EmployeeParserIface
	statusRepo repository.StatusRepoIface
	metrics    *metrics.Metrics
	rater      Rater
	limit      int
	now        func() time.Time

	mu       sync.RWMutex
	roster   []models.Employee
	loaded   bool
	lastErr  error
	lastSync time.Time
	scores   map[int]int
}

// NewDirectory creates a Directory. statusRepo may be nil when no database is configured.
func NewDirectory(
	log *slog.Logger,
	employeeParser parser.EmployeeParserIface,
	statusRepo repository.StatusRepoIface,
	metrics *metrics.Metrics,
	limit int,
	rater Rater,
) *Directory {
	if rater == nil {
		rater = RandomRater
	}

	return &Directory{
		log:        log,
		parser:     employeeParser,
		statusRepo: statusRepo,
		metrics:    metrics,
		rater:      rater,
		limit:      limit,
		now:        time.Now,
		scores:     make(map[int]int),
	}
}

func (d *Directory) initLogger(opn string) *slog.Logger {
	return sl.Op(d.log, opn, "employee")
}

// Start loads the roster and refreshes it every interval until ctx is done.
// A failed load is logged and retried on the next tick only.
func (d *Directory) Start(ctx context.Context, interval time.Duration) error {
	const opn = "Directory.Start"
	log := d.initLogger(opn)

	if d.statusRepo != nil {
		if lastSync, err := d.statusRepo.GetLastSyncTime(ctx); err == nil {
			log.InfoContext(ctx, "Previous sync found", "last_sync", lastSync.Format(time.RFC3339))
		}
	}

	log.InfoContext(ctx, "Loading employee roster")
	if err := d.Sync(ctx); err != nil {
		log.ErrorContext(ctx, "Initial sync failed", sl.Err(err))
	}

	log.InfoContext(ctx, "Starting refresh mode", "interval", interval.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.InfoContext(ctx, "Periodic sync triggered.")
			if err := d.Sync(ctx); err != nil {
				log.ErrorContext(ctx, "Periodic sync failed", sl.Err(err))
			}
		case <-ctx.Done():
			log.InfoContext(ctx, "Service shutting down.")
			return nil
		}
	}
}

// Sync fetches the roster and replaces the cached one. On failure the previous roster is kept.
func (d *Directory) Sync(pctx context.Context) error {
	const opn = "Directory.Sync"
	log := d.initLogger(opn)

	contextTimeout := 30
	ctx, cancel := context.WithTimeout(pctx, time.Duration(contextTimeout)*time.Second)
	defer cancel()

	startTime := time.Now()
	defer func() {
		d.metrics.SyncDuration.Observe(time.Since(startTime).Seconds())
	}()

	fetched, err := d.parser.ParseEmployees(ctx, d.limit)
	if err != nil {
		d.metrics.SyncRuns.WithLabelValues("failure").Inc()

		d.mu.Lock()
		d.lastErr = err
		d.mu.Unlock()

		return fmt.Errorf("failed to fetch employees: %w", err)
	}

	d.mu.Lock()
	roster := make([]models.Employee, 0, len(fetched))
	for _, employee := range fetched {
		employee.Performance = d.scoreLocked(employee.ID)
		roster = append(roster, employee)
	}
	d.roster = roster
	d.loaded = true
	d.lastErr = nil
	d.lastSync = d.now()
	syncedAt := d.lastSync
	d.mu.Unlock()

	d.metrics.SyncRuns.WithLabelValues("success").Inc()
	d.metrics.LastSuccessfulSync.Set(float64(syncedAt.Unix()))
	d.metrics.RosterSize.Set(float64(len(roster)))
	log.InfoContext(ctx, "Roster synced", "count", len(roster))

	if d.statusRepo != nil {
		if err = d.statusRepo.SaveSyncStatus(ctx, syncedAt, len(roster)); err != nil {
			log.WarnContext(ctx, "Failed to record sync status", sl.Err(err))
		}
	}

	return nil
}

// Employees returns a copy of the cached roster.
func (d *Directory) Employees() ([]models.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		if d.lastErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotLoaded, d.lastErr)
		}
		return nil, ErrNotLoaded
	}

	return slices.Clone(d.roster), nil
}

// LastSync returns when the roster was last refreshed; zero before the first success.
func (d *Directory) LastSync() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.lastSync
}

// Employee returns the detail view of one employee. Cached employees are served from the
// roster; anything else is fetched by ID and rated like roster members.
func (d *Directory) Employee(ctx context.Context, identifier int) (models.EmployeeDetail, error) {
	const opn = "Directory.Employee"

	employee, ok := d.cached(identifier)
	if !ok {
		fetched, err := d.parser.ParseEmployee(ctx, identifier)
		if err != nil {
			return models.EmployeeDetail{}, fmt.Errorf("failed to fetch employee %d: %w", identifier, err)
		}

		d.mu.Lock()
		fetched.Performance = d.scoreLocked(fetched.ID)
		d.mu.Unlock()

		employee = fetched
		d.initLogger(opn).DebugContext(ctx, "Employee fetched outside roster", "id", identifier)
	}

	return demo.Enrich(employee, d.now()), nil
}

func (d *Directory) cached(identifier int) (models.Employee, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx := slices.IndexFunc(d.roster, func(e models.Employee) bool { return e.ID == identifier })
	if idx < 0 {
		return models.Employee{}, false
	}

	return d.roster[idx], true
}

// scoreLocked returns the rating assigned to identifier, drawing one on first sight.
// The caller must hold d.mu for writing.
func (d *Directory) scoreLocked(identifier int) int {
	if score, ok := d.scores[identifier]; ok {
		return score
	}

	score := min(max(d.rater(), models.MinRating), models.MaxRating)
	d.scores[identifier] = score

	return score
}

// Package bookmarks keeps the ordered set of employees a user flagged as favourites.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
)

// Persister loads and saves the whole bookmark list.
type Persister interface {
	Load(ctx context.Context) ([]models.Employee, error)
	Save(ctx context.Context, bookmarks []models.Employee) error
}

// ErrNotLoaded is returned by Flush after Load failed. The persisted copy is left untouched
// until a later Load succeeds.
var ErrNotLoaded = errors.New("bookmarks were not loaded, refusing to overwrite the stored copy")

// Store is an ordered set of employee snapshots keyed by employee ID.
// Every change is written through to the Persister, except after a failed Load: from then on
// changes stay in memory until a Load succeeds.
type Store struct {
	log       *slog.Logger
	persister Persister
	metrics   *metrics.Metrics

	// writeMu orders writers so the persisted copy never goes back in time.
	writeMu sync.Mutex
	// loadErr is the error of the last Load, guarded by writeMu.
	loadErr error
	mu      sync.RWMutex
	entries []models.Employee
}

func NewStore(log *slog.Logger, persister Persister, metrics *metrics.Metrics) *Store {
	return &Store{
		log:       log.With(slog.String("division", "bookmarks")),
		persister: persister,
		metrics:   metrics,
		entries:   []models.Employee{},
	}
}

// Load replaces the in-memory set with the persisted one. Duplicate IDs keep their first occurrence.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.persister.Load(ctx)
	if err != nil {
		s.writeMu.Lock()
		s.loadErr = err
		s.writeMu.Unlock()

		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	entries := make([]models.Employee, 0, len(loaded))
	seen := make(map[int]struct{}, len(loaded))
	for _, employee := range loaded {
		if _, ok := seen[employee.ID]; ok {
			continue
		}
		seen[employee.ID] = struct{}{}
		entries = append(entries, employee)
	}

	s.writeMu.Lock()
	s.loadErr = nil
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.log.InfoContext(ctx, "Bookmarks loaded", "count", len(entries))

	return nil
}

// Flush writes the current set to the Persister.
func (s *Store) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.loadErr != nil {
		return fmt.Errorf("%w: %w", ErrNotLoaded, s.loadErr)
	}

	s.mu.RLock()
	snapshot := slices.Clone(s.entries)
	s.mu.RUnlock()

	if err := s.persister.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}

	return nil
}

// Add stores a snapshot of employee. It reports false when the ID was already bookmarked.
func (s *Store) Add(ctx context.Context, employee models.Employee) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.add(ctx, employee)
}

// Remove deletes the bookmark for identifier. It reports false when there was none.
func (s *Store) Remove(ctx context.Context, identifier int) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.remove(ctx, identifier)
}

// Toggle adds employee when absent and removes it otherwise. It reports whether the
// employee is bookmarked afterwards.
func (s *Store) Toggle(ctx context.Context, employee models.Employee) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.remove(ctx, employee.ID) {
		return false
	}

	return s.add(ctx, employee)
}

func (s *Store) add(ctx context.Context, employee models.Employee) bool {
	s.mu.Lock()
	if s.indexOf(employee.ID) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.entries = append(s.entries, employee)
	snapshot := slices.Clone(s.entries)
	s.mu.Unlock()

	s.metrics.BookmarkOps.WithLabelValues("add").Inc()
	s.persist(ctx, snapshot)

	return true
}

func (s *Store) remove(ctx context.Context, identifier int) bool {
	s.mu.Lock()
	idx := s.indexOf(identifier)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.entries = slices.Delete(s.entries, idx, idx+1)
	snapshot := slices.Clone(s.entries)
	s.mu.Unlock()

	s.metrics.BookmarkOps.WithLabelValues("remove").Inc()
	s.persist(ctx, snapshot)

	return true
}

// Contains reports whether identifier is bookmarked.
func (s *Store) Contains(identifier int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOf(identifier) >= 0
}

// IDs returns the set of bookmarked IDs.
func (s *Store) IDs() map[int]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[int]bool, len(s.entries))
	for _, employee := range s.entries {
		ids[employee.ID] = true
	}

	return ids
}

// List returns the bookmarks in insertion order.
func (s *Store) List() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.entries)
}

// Save failures are not returned: the in-memory set stays authoritative and the
// next successful write or Flush catches the persisted copy up.
func (s *Store) persist(ctx context.Context, snapshot []models.Employee) {
	if s.loadErr != nil {
		s.metrics.BookmarkPersistFailures.Inc()
		s.log.WarnContext(ctx, "Bookmarks kept in memory only, stored copy failed to load",
			sl.Err(s.loadErr), "count", len(snapshot))
		return
	}

	if err := s.persister.Save(ctx, snapshot); err != nil {
		s.metrics.BookmarkPersistFailures.Inc()
		s.log.ErrorContext(ctx, "Failed to persist bookmarks", sl.Err(err), "count", len(snapshot))
	}
}

func (s *Store) indexOf(identifier int) int {
	return slices.IndexFunc(s.entries, func(e models.Employee) bool { return e.ID == identifier })
}

package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
)

// RepositoryPersister keeps the bookmark list as a single named entry in the database.
type RepositoryPersister struct {
	repo repository.KVRepoIface
	name string
}

func NewRepositoryPersister(repo repository.KVRepoIface, name string) *RepositoryPersister {
	return &RepositoryPersister{repo: repo, name: name}
}

// Load returns the stored bookmarks. A missing entry is an empty set.
func (p *RepositoryPersister) Load(ctx context.Context) ([]models.Employee, error) {
	value, err := p.repo.GetEntry(ctx, p.name)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return []models.Employee{}, nil
		}
		return nil, fmt.Errorf("failed to read bookmarks entry: %w", err)
	}

	bookmarks := []models.Employee{}
	if err = json.Unmarshal(value, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks entry %s: %w", p.name, err)
	}

	return bookmarks, nil
}

// Save replaces the stored entry with bookmarks.
func (p *RepositoryPersister) Save(ctx context.Context, bookmarks []models.Employee) error {
	if bookmarks == nil {
		bookmarks = []models.Employee{}
	}

	value, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("failed to encode bookmarks: %w", err)
	}

	if err = p.repo.PutEntry(ctx, p.name, value); err != nil {
		return fmt.Errorf("failed to write bookmarks entry: %w", err)
	}

	return nil
}

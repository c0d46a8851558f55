package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UnknownOlympus/athena/internal/models"
)

const filePerm = 0o600

type fileDocument struct {
	Name      string            `json:"name"`
	Bookmarks []models.Employee `json:"bookmarks"`
}

// FilePersister keeps the bookmark list in a JSON file on the local disk.
type FilePersister struct {
	path string
	name string
}

func NewFilePersister(path, name string) *FilePersister {
	return &FilePersister{path: path, name: name}
}

// Load returns the stored bookmarks. A missing file is an empty set.
func (p *FilePersister) Load(_ context.Context) ([]models.Employee, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Employee{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	var doc fileDocument
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks file %s: %w", p.path, err)
	}
	if doc.Name != "" && doc.Name != p.name {
		return nil, fmt.Errorf("bookmarks file %s belongs to store %q, not %q", p.path, doc.Name, p.name)
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []models.Employee{}
	}

	return doc.Bookmarks, nil
}

// Save rewrites the file through a temporary file and a rename so readers never see a partial write.
func (p *FilePersister) Save(_ context.Context, bookmarks []models.Employee) error {
	data, err := json.MarshalIndent(fileDocument{Name: p.name, Bookmarks: bookmarks}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode bookmarks: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err = os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd // directory permissions
		return fmt.Errorf("failed to create bookmarks directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary bookmarks file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write bookmarks: %w", err)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set bookmarks file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary bookmarks file: %w", err)
	}

	if err = os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("failed to replace bookmarks file: %w", err)
	}

	return nil
}

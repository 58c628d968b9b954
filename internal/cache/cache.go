// Package cache persists the enriched artist list as a single JSON
// document. The file is the read model for the web handlers and is
// replaced wholesale on every run.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/petervass/lineup/internal/domain"
)

// Store reads and writes one artist cache file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save replaces the cache file with the given records, creating parent
// directories as needed. The write goes to a temp file first and is
// renamed into place so readers never observe a half-written file.
func (s *Store) Save(artists []domain.Artist) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(artists, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artist cache: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Load returns the cached artist list, or an empty list when the file
// does not exist yet.
func (s *Store) Load() ([]domain.Artist, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Artist{}, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var artists []domain.Artist
	if err := json.Unmarshal(data, &artists); err != nil {
		return nil, fmt.Errorf("failed to decode cache: %w", err)
	}
	return artists, nil
}

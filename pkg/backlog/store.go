package backlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"log-shipper/pkg/event"
)

// Extension marks backlog records so they can share a directory with
// unrelated files without being picked up by reconciliation.
const Extension = ".tlog"

// Store persists one event per file in a designated directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created
// lazily by EnsureDir; construction never touches the filesystem.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the backlog directory path.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the backlog directory if it does not exist yet.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backlog directory %s: %w", s.dir, err)
	}
	return nil
}

// Write serializes the event and stores it under a fresh random file
// name. It returns the file name used.
func (s *Store) Write(ev event.Event) (string, error) {
	data, err := event.Marshal(ev)
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + Extension
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backlog file %s: %w", name, err)
	}
	return name, nil
}

// List enumerates the backlog record files currently on disk. Files
// without the backlog extension are ignored.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list backlog directory %s: %w", s.dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), Extension) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Read loads and deserializes a single backlog record.
func (s *Store) Read(name string) (event.Event, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to read backlog file %s: %w", name, err)
	}
	return event.Unmarshal(data)
}

// Remove deletes a backlog record.
func (s *Store) Remove(name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to remove backlog file %s: %w", name, err)
	}
	return nil
}

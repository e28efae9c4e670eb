package backlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log-shipper/pkg/event"
)

func TestStore_WriteReadRemove(t *testing.T) {
	s := NewStore(t.TempDir())

	in := event.Event{
		Action:     "click",
		Date:       1700000000123,
		Attributes: map[string]string{"id": "7"},
		Origin:     event.Origin{OS: "linux"},
	}
	name, err := s.Write(in)
	if err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if !strings.HasSuffix(name, Extension) {
		t.Fatalf("expected file name with %s extension, got %q", Extension, name)
	}

	out, err := s.Read(name)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if out.Action != in.Action || out.Date != in.Date || out.Attributes["id"] != "7" {
		t.Fatalf("round trip changed event: %+v", out)
	}

	if err := s.Remove(name); err != nil {
		t.Fatalf("unexpected remove error: %v", err)
	}
	if _, err := s.Read(name); err == nil {
		t.Fatalf("expected read of removed file to fail")
	}
}

func TestStore_WriteUsesUniqueNames(t *testing.T) {
	s := NewStore(t.TempDir())
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		name, err := s.Write(event.Event{Action: "ping", Date: int64(i)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[name] {
			t.Fatalf("duplicate backlog file name %q", name)
		}
		seen[name] = true
	}
}

func TestStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if _, err := s.Write(event.Event{Action: "click", Date: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("failed to create foreign file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"+Extension), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected 1 backlog record, got %d: %v", len(names), names)
	}
}

func TestStore_ListMissingDirFails(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := s.List(); err == nil {
		t.Fatalf("expected error listing a missing directory")
	}
}

func TestStore_EnsureDirCreatesPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backlog")
	s := NewStore(dir)
	if err := s.EnsureDir(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
	// Idempotent on an existing directory.
	if err := s.EnsureDir(); err != nil {
		t.Fatalf("unexpected error on second ensure: %v", err)
	}
}

func TestStore_ReadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "bad"+Extension), []byte("{{{"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}
	if _, err := s.Read("bad" + Extension); err == nil {
		t.Fatalf("expected error reading corrupt record")
	}
}

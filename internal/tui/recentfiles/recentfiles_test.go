// ABOUTME: Tests for recent resume tracking
// ABOUTME: Validates ordering, max limit, stale path filtering and storage

package recentfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/careervista/careervista-cli/internal/storage"
)

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], []byte("%PDF-1.4"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func TestLoadEmpty(t *testing.T) {
	rf := New(storage.NewMemory())

	if files := rf.Load(); len(files) != 0 {
		t.Errorf("expected empty list, got %d files", len(files))
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := storage.NewMemory()
	paths := writeFiles(t, "a.pdf", "b.pdf")

	if err := New(store).Save(paths); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := New(store).Load()
	if len(loaded) != 2 || loaded[0] != paths[0] {
		t.Errorf("expected %v, got %v", paths, loaded)
	}
}

func TestAddMoveToFront(t *testing.T) {
	rf := New(storage.NewMemory())
	paths := writeFiles(t, "a.pdf", "b.pdf")

	rf.Add(paths[0])
	rf.Add(paths[1])
	if files := rf.Load(); files[0] != paths[1] {
		t.Errorf("expected b.pdf first, got %s", files[0])
	}

	rf.Add(paths[0])
	files := rf.Load()
	if len(files) != 2 {
		t.Fatalf("expected 2 files after re-add, got %d", len(files))
	}
	if files[0] != paths[0] {
		t.Errorf("expected a.pdf first after re-add, got %s", files[0])
	}
}

func TestMaxLimit(t *testing.T) {
	rf := New(storage.NewMemory())
	var names []string
	for i := 1; i <= 7; i++ {
		names = append(names, fmt.Sprintf("resume%d.pdf", i))
	}
	paths := writeFiles(t, names...)
	for _, p := range paths {
		rf.Add(p)
	}

	files := rf.Load()
	if len(files) != MaxRecentFiles {
		t.Errorf("expected %d files max, got %d", MaxRecentFiles, len(files))
	}
	if files[0] != paths[6] {
		t.Errorf("expected %s first, got %s", paths[6], files[0])
	}
}

func TestLoadRemovesStaleFiles(t *testing.T) {
	store := storage.NewMemory()
	kept := writeFiles(t, "real.pdf")[0]
	store.Set(StoreKey, fmt.Sprintf(`["/nonexistent/file.pdf", %q]`, kept))

	loaded := New(store).Load()
	if len(loaded) != 1 || loaded[0] != kept {
		t.Errorf("expected only %s, got %v", kept, loaded)
	}
}

func TestLoadCorruptValue(t *testing.T) {
	store := storage.NewMemory()
	store.Set(StoreKey, "{not json")

	if files := New(store).Load(); len(files) != 0 {
		t.Errorf("expected fresh list, got %v", files)
	}
}

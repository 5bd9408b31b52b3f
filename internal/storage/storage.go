// ABOUTME: Key/value persistence for client state that must survive restarts
// ABOUTME: File-backed JSON store in the XDG config dir plus an in-memory twin

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/samber/oops"
)

// AppName names the config subdirectory.
const AppName = "careervista"

const storeFile = "storage.json"

// Store is a flat string key/value store. Writes are last-write-wins.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
	Keys() []string
}

// DefaultConfigDir returns the config directory following XDG conventions.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// FileStore keeps the whole map in memory and rewrites the file on every
// mutation.
type FileStore struct {
	mu   sync.RWMutex
	dir  string
	data map[string]string
}

// Open loads the store under dir. A missing file is an empty store; a
// corrupt one is discarded.
func Open(dir string) (*FileStore, error) {
	fs := &FileStore{dir: dir, data: map[string]string{}}
	raw, err := os.ReadFile(fs.path())
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, oops.Code("STORAGE_READ").With("path", fs.path()).Wrapf(err, "reading store")
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil || fs.data == nil {
		// Invalid JSON, start fresh
		fs.data = map[string]string{}
	}
	return fs, nil
}

func (fs *FileStore) path() string {
	return filepath.Join(fs.dir, storeFile)
}

// Path returns the backing file location.
func (fs *FileStore) Path() string {
	return fs.path()
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	v, ok := fs.data[key]
	return v, ok
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data[key] = value
	return fs.flush()
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.flush()
}

func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data = map[string]string{}
	return fs.flush()
}

func (fs *FileStore) Keys() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return sortedKeys(fs.data)
}

// flush writes through a temp file so a crash never leaves half a store.
// Caller holds mu.
func (fs *FileStore) flush() error {
	if err := os.MkdirAll(fs.dir, 0o700); err != nil {
		return oops.Code("STORAGE_WRITE").With("dir", fs.dir).Wrapf(err, "creating config dir")
	}
	raw, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return oops.Code("STORAGE_WRITE").Wrapf(err, "encoding store")
	}
	tmp, err := os.CreateTemp(fs.dir, storeFile+".*")
	if err != nil {
		return oops.Code("STORAGE_WRITE").With("dir", fs.dir).Wrapf(err, "creating temp file")
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return oops.Code("STORAGE_WRITE").Wrapf(err, "writing store")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return oops.Code("STORAGE_WRITE").Wrapf(err, "closing store")
	}
	if err := os.Rename(tmp.Name(), fs.path()); err != nil {
		os.Remove(tmp.Name())
		return oops.Code("STORAGE_WRITE").With("path", fs.path()).Wrapf(err, "replacing store")
	}
	return nil
}

// MemoryStore is a Store that never touches disk.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
	return nil
}

func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.data)
}

func sortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

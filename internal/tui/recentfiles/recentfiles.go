// ABOUTME: Remembers resume files picked recently for the upload picker
// ABOUTME: Paths live in the session store, so logging out forgets them

package recentfiles

import (
	"encoding/json"
	"os"

	"github.com/samber/oops"

	"github.com/careervista/careervista-cli/internal/storage"
)

// StoreKey is where the list lives in the session store.
const StoreKey = "recentResumes"

// MaxRecentFiles is the maximum number of recent files to keep
const MaxRecentFiles = 5

// RecentFiles manages the list of recently used resume files
type RecentFiles struct {
	store storage.Store
	files []string
}

// New creates a new RecentFiles manager over store
func New(store storage.Store) *RecentFiles {
	return &RecentFiles{store: store}
}

// Load reads the list, dropping files that no longer exist
func (rf *RecentFiles) Load() []string {
	rf.files = []string{}
	raw, ok := rf.store.Get(StoreKey)
	if !ok {
		return rf.files
	}

	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		// Unreadable, start fresh
		return rf.files
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			rf.files = append(rf.files, path)
		}
	}
	return rf.files
}

// Save writes the list, trimmed to MaxRecentFiles
func (rf *RecentFiles) Save(files []string) error {
	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	rf.files = files

	data, err := json.Marshal(files)
	if err != nil {
		return oops.Code("RECENT_ENCODE").Wrap(err)
	}
	return rf.store.Set(StoreKey, string(data))
}

// Add moves path to the front of the list
func (rf *RecentFiles) Add(path string) error {
	if rf.files == nil {
		rf.Load()
	}

	newFiles := make([]string, 0, len(rf.files)+1)
	newFiles = append(newFiles, path)
	for _, f := range rf.files {
		if f != path {
			newFiles = append(newFiles, f)
		}
	}
	return rf.Save(newFiles)
}

// List returns the current list of recent files
func (rf *RecentFiles) List() []string {
	if rf.files == nil {
		rf.Load()
	}
	return rf.files
}

// Package cache provides a persistent JSON store of terse lint outputs keyed
// by a hash of the linter invocation and the file content. The baseline side
// of a comparison lints HEAD blobs that rarely change between commits, so
// most of them are served from here.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one cached lint output.
type Entry struct {
	Lines     []string `json:"lines"`
	Warnings  bool     `json:"warnings"`
	UpdatedAt string   `json:"updated_at"`
}

// Store persists lint outputs to a JSON file on disk.
type Store struct {
	mu      sync.RWMutex
	Entries map[string]Entry `json:"entries"`
	path    string
	dirty   bool
}

// New creates a new Store backed by the given file path.
func New(path string) *Store {
	return &Store{
		Entries: make(map[string]Entry),
		path:    path,
	}
}

// DefaultPath returns the default cache file path (~/.difflint/cache.json).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".difflint/cache.json"
	}
	return filepath.Join(home, ".difflint", "cache.json")
}

// Key hashes the parts identifying one lint run.
func Key(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		// length prefix keeps ("ab","c") and ("a","bc") apart
		fmt.Fprintf(h, "%d:", len(p))
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load reads the cache file from disk. If the file doesn't exist,
// the store starts empty (no error). Symlinks are rejected.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Lstat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("cache file is a symlink (rejected for security): %s", s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if s.Entries == nil {
		s.Entries = make(map[string]Entry)
	}
	return nil
}

// Save writes the cache to disk when it changed, creating parent directories
// if needed. Directories are created with 0o700, files with 0o600
// (owner-only). Symlinks are rejected.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	if info, err := os.Lstat(s.path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("cache file is a symlink (rejected for security): %s", s.path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Get returns the entry for the given key and whether it exists.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.Entries[key]
	return e, ok
}

// Set stores a lint output for the given key with the current timestamp.
func (s *Store) Set(key string, lines []string, warnings bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries[key] = Entry{
		Lines:     append([]string(nil), lines...),
		Warnings:  warnings,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.dirty = true
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Entries)
}

// Path returns the file path of this store.
func (s *Store) Path() string {
	return s.path
}

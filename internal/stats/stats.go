package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/lumipallolabs/diskseek/internal/logging"
)

// LastSearch records when the most recent search was launched and when its
// results were complete
type LastSearch struct {
	Launched time.Time `json:"launched"`
	Found    time.Time `json:"found"`
	Matched  int64     `json:"matched"`
	Stopped  bool      `json:"stopped,omitempty"`
}

// Took returns how long the search ran
func (l LastSearch) Took() time.Duration {
	if l.Launched.IsZero() || l.Found.Before(l.Launched) {
		return 0
	}
	return l.Found.Sub(l.Launched)
}

// Stats holds persistent preferences and counters
type Stats struct {
	LastDirectory  string     `json:"last_directory,omitempty"`
	Mode           string     `json:"mode,omitempty"`
	IncludeHidden  bool       `json:"include_hidden"`
	MatchExtension bool       `json:"match_extension"`
	LastSearch     LastSearch `json:"last_search"`
	SearchCount    int64      `json:"search_count"`
}

// Manager handles loading and saving stats
type Manager struct {
	path         string
	stats        Stats
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a stats manager storing stats.json in dir.
// An empty dir means ~/.diskseek.
func NewManager(dir string) *Manager {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Manager{
		path:         filepath.Join(dir, "stats.json"),
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// DefaultDir returns the per-user state directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".diskseek"
	}
	return filepath.Join(home, ".diskseek")
}

// Path returns the stats file location
func (m *Manager) Path() string {
	return m.path
}

// Load loads stats from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock := flock.New(m.path + ".lock")
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err == nil {
		if err := lock.RLock(); err != nil {
			return fmt.Errorf("lock stats: %w", err)
		}
		defer lock.Unlock()
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No stats file yet, start fresh
			m.stats = Stats{}
			return nil
		}
		return err
	}

	if err := json.Unmarshal(data, &m.stats); err != nil {
		return fmt.Errorf("parse %s: %w", m.path, err)
	}
	return nil
}

// Save saves stats to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves stats without acquiring the lock (caller must hold lock).
// The file lock keeps a CLI run and a TUI from interleaving writes.
func (m *Manager) saveLocked() error {
	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}

	if err := lockAndWrite(m.path, data); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// lockAndWrite takes path.lock and replaces path through a temp file
func lockAndWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(dir, ".stats-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// Stats returns a copy of the current stats
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// LastDirectory returns the last searched directory
func (m *Manager) LastDirectory() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.LastDirectory
}

// LastSearch returns the timing of the most recent search
func (m *Manager) LastSearch() LastSearch {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.LastSearch
}

// SetLastDirectory sets the last searched directory and schedules a save
func (m *Manager) SetLastDirectory(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stats.LastDirectory == path {
		return
	}

	m.stats.LastDirectory = path
	m.scheduleSaveLocked()
}

// SetSearchOptions remembers the mode and toggles used for the last search
func (m *Manager) SetSearchOptions(mode string, includeHidden, matchExtension bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stats.Mode == mode && m.stats.IncludeHidden == includeHidden && m.stats.MatchExtension == matchExtension {
		return
	}

	m.stats.Mode = mode
	m.stats.IncludeHidden = includeHidden
	m.stats.MatchExtension = matchExtension
	m.scheduleSaveLocked()
}

// RecordSearch stores the timing of a finished search and bumps the counter
func (m *Manager) RecordSearch(last LastSearch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.LastSearch = last
	m.stats.SearchCount++
	m.scheduleSaveLocked()
}

// scheduleSaveLocked marks stats dirty and restarts the debounce timer
func (m *Manager) scheduleSaveLocked() {
	m.dirty = true

	// Cancel any pending save timer
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	// Schedule a debounced save
	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			if err := m.saveLocked(); err != nil {
				logging.Debug.Printf("background stats save failed: %v", err)
			}
		}
	})
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}

// Package prefs persists the small playback-preferences record across
// runs. Reads fall back to defaults on any error and writes are
// best-effort: playback behaves identically whether or not the file is
// usable.
package prefs

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// Preferences is the persisted playback record.
type Preferences struct {
	Volume       int     `json:"volume"`
	Muted        bool    `json:"muted"`
	LastIndex    int     `json:"lastIndex"`
	LastPosition float64 `json:"lastPositionSeconds"`
}

// Defaults returns the documented fallback record used whenever the stored
// one is missing or unreadable.
func Defaults() Preferences {
	return Preferences{
		Volume:       100,
		Muted:        false,
		LastIndex:    0,
		LastPosition: 0,
	}
}

// Store reads and writes one preferences file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the preferences file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored preferences. On a missing file, unreadable file or
// corrupt JSON it returns Defaults; it never fails the caller. Out of
// range values are clamped on the way in.
func (s *Store) Load() Preferences {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Defaults()
	}

	p := Defaults()
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Debug("discarding corrupt preferences", "path", s.path, "error", err)
		return Defaults()
	}

	return sanitize(p)
}

// Save writes the preferences, creating the parent directory on demand.
// Failures are logged and swallowed.
func (s *Store) Save(p Preferences) {
	p = sanitize(p)

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		slog.Debug("failed to encode preferences", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		slog.Debug("failed to create preferences dir", "path", s.path, "error", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		slog.Debug("failed to write preferences", "path", s.path, "error", err)
	}
}

// Reset removes the stored record, best-effort.
func (s *Store) Reset() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Debug("failed to remove preferences", "path", s.path, "error", err)
	}
}

func sanitize(p Preferences) Preferences {
	if p.Volume < 0 {
		p.Volume = 0
	}
	if p.Volume > 100 {
		p.Volume = 100
	}
	if p.LastIndex < 0 {
		p.LastIndex = 0
	}
	if p.LastPosition < 0 {
		p.LastPosition = 0
	}
	return p
}

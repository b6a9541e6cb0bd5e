// Package config provides the JSON settings store. Settings are addressed
// by dot path (e.g. "statusbar.show_mode") and fall back to built-in
// defaults when unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Settings is a thread-safe settings store backed by a JSON document.
type Settings struct {
	mu sync.RWMutex

	// doc is the user settings JSON document.
	doc string

	// defaults is the built-in defaults JSON document.
	defaults string

	// path is the file the settings were loaded from, if any.
	path string
}

// New creates a settings store with the built-in defaults.
func New() *Settings {
	return &Settings{
		doc:      "{}",
		defaults: defaultsJSON,
	}
}

// Load reads user settings from the file at path. A missing file is not
// an error; the defaults remain in effect. Malformed JSON is rejected.
func (s *Settings) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.path = path
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, path)
	}

	s.mu.Lock()
	s.doc = string(data)
	s.path = path
	s.mu.Unlock()
	return nil
}

// Save writes the user settings document to the file it was loaded from,
// creating parent directories as needed.
func (s *Settings) Save() error {
	s.mu.RLock()
	doc, path := s.doc, s.path
	s.mu.RUnlock()

	if path == "" {
		return ErrNoPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(doc), 0o644)
}

// Get returns the value at the dot path, consulting user settings first
// and defaults second.
func (s *Settings) Get(path string) gjson.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v := gjson.Get(s.doc, path); v.Exists() {
		return v
	}
	return gjson.Get(s.defaults, path)
}

// GetString returns the string value at the dot path.
func (s *Settings) GetString(path string) string {
	return s.Get(path).String()
}

// GetBool returns the boolean value at the dot path.
func (s *Settings) GetBool(path string) bool {
	return s.Get(path).Bool()
}

// GetInt returns the integer value at the dot path.
func (s *Settings) GetInt(path string) int {
	return int(s.Get(path).Int())
}

// Has returns true if the path exists in user settings or defaults.
func (s *Settings) Has(path string) bool {
	return s.Get(path).Exists()
}

// Set stores a value at the dot path in the user settings document.
func (s *Settings) Set(path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := sjson.Set(s.doc, path, value)
	if err != nil {
		return fmt.Errorf("config: set %s: %w", path, err)
	}
	s.doc = doc
	return nil
}

// SetRaw stores a raw JSON fragment at the dot path.
func (s *Settings) SetRaw(path, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !gjson.Valid(raw) {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, raw)
	}
	doc, err := sjson.SetRaw(s.doc, path, raw)
	if err != nil {
		return fmt.Errorf("config: set %s: %w", path, err)
	}
	s.doc = doc
	return nil
}

// Document returns the user settings JSON document.
func (s *Settings) Document() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// DefaultPath returns the default settings file location following the
// XDG config directory convention.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pictor", "settings.json")
}

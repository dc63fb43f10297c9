// Package configstore persists user preferences between runs.
//
// Preferences live in a YAML file under the OS-specific user config
// directory. The store is a collaborator of the CLI only: the conversion
// engine never reads it, so conversions stay pure functions of their inputs.
package configstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// appDirName is the directory created under the user config dir.
const appDirName = "asciivision"

// fileName is the preferences file name.
const fileName = "config.yaml"

// Preferences are the persisted user settings. Zero values are meaningful
// defaults: auto-describe off, no known screen reader, default model.
type Preferences struct {
	// AutoDescribe enables automatic image descriptions after conversion.
	AutoDescribe bool `yaml:"auto_describe"`

	// ScreenReader records the screen reader detected on a previous run,
	// so the enable-descriptions prompt is asked only once.
	ScreenReader string `yaml:"screen_reader,omitempty"`

	// Model is the preferred description model.
	Model string `yaml:"model,omitempty"`
}

// DefaultPreferences returns the out-of-the-box preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		AutoDescribe: false,
		Model:        "gpt-4o",
	}
}

// Store reads and writes the preferences file.
type Store struct {
	path string
}

// NewStore creates a store rooted at the user config directory
// (~/.config/asciivision on Linux, Application Support on macOS,
// %APPDATA% on Windows).
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("configstore: locate user config dir: %w", err)
	}
	return NewStoreAt(filepath.Join(base, appDirName, fileName)), nil
}

// NewStoreAt creates a store using an explicit file path. Used in tests and
// by callers that manage their own config location.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the preferences file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads preferences from disk. A missing or unreadable file yields the
// defaults rather than an error; preferences are never load-bearing.
func (s *Store) Load() Preferences {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return prefs
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences()
	}
	if prefs.Model == "" {
		prefs.Model = DefaultPreferences().Model
	}
	return prefs
}

// Save writes preferences to disk, creating the config directory if needed.
func (s *Store) Save(prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("configstore: create config dir: %w", err)
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("configstore: marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("configstore: write %s: %w", s.path, err)
	}
	return nil
}

// Exists reports whether a preferences file has been written before.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, os.ErrNotExist)
}

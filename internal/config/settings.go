package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Keymap holds the TUI key bindings.
type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Filter  string `toml:"filter"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

// Settings holds the contents of settings.toml.
type Settings struct {
	// ListID pins the client to one remote task list. Empty means the
	// backend's default list.
	ListID string `toml:"list_id"`

	// CachePath overrides the local cache database location.
	CachePath string `toml:"cache_path"`

	// DefaultFilter is the filter applied at startup: all, active or
	// completed.
	DefaultFilter string `toml:"default_filter"`

	Keys Keymap `toml:"keys"`
}

// LoadOrCreateSettings reads settings from path, writing the defaults
// there first if the file does not exist yet.
func LoadOrCreateSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeSettings(path, settings); err != nil {
			return settings, err
		}
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, err
	}
	if settings.DefaultFilter == "" {
		settings.DefaultFilter = "all"
	}
	return settings, nil
}

func writeSettings(path string, settings Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		DefaultFilter: "all",
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Filter:  "f",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}

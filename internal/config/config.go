package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"rowloom/internal/domain"
)

// Paths locates the files rowloom keeps on disk. Everything lives under
// one per-user directory so a backup of that directory captures all state.
type Paths struct {
	Dir          string // config directory
	SettingsPath string // settings.toml
	DBPath       string // rowloom.db
	LogPath      string // rowloom.log
}

// DefaultPaths resolves the per-user rowloom directory, creating it if
// needed.
func DefaultPaths() Paths {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	dir := filepath.Join(configDir, "rowloom")
	os.MkdirAll(dir, 0755)

	return PathsIn(dir)
}

// PathsIn returns the standard file layout rooted at dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dir:          dir,
		SettingsPath: filepath.Join(dir, "settings.toml"),
		DBPath:       filepath.Join(dir, "rowloom.db"),
		LogPath:      filepath.Join(dir, "rowloom.log"),
	}
}

// SettingsStore handles settings persistence.
type SettingsStore interface {
	Load() (domain.Settings, error)
	Save(settings domain.Settings) error
}

// settingsStore is the concrete TOML-backed implementation.
type settingsStore struct {
	filePath string
}

// NewSettingsStore creates a settings store writing to the given path.
func NewSettingsStore(path string) SettingsStore {
	return &settingsStore{filePath: path}
}

// Load reads the settings file. A missing file is not an error: the
// defaults are returned so first run works without setup.
func (ss *settingsStore) Load() (domain.Settings, error) {
	data, err := os.ReadFile(ss.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Start from defaults so fields absent from the file keep sane values.
	settings := domain.DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// Save writes the settings file, creating its directory if needed.
func (ss *settingsStore) Save(settings domain.Settings) error {
	dir := filepath.Dir(ss.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(ss.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

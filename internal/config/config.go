package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/duehelper/due-helper/internal/domain"
)

// Config represents the full Due Helper configuration
type Config struct {
	DataDir  string        `json:"dataDir"`
	Storage  StorageConfig `json:"storage"`
	Display  DisplayConfig `json:"display"`
	Language string        `json:"language"`
}

// StorageConfig selects and tunes the persistence backend
type StorageConfig struct {
	// Backend is "file" (plain JSON file) or "bolt" (key-value database).
	Backend  string `json:"backend"`
	FileName string `json:"fileName"`
}

// DisplayConfig contains presentation settings
type DisplayConfig struct {
	DefaultColor   string `json:"defaultColor"`
	ShowCompleted  bool   `json:"showCompleted"`
	GroupByDefault bool   `json:"groupByDefault"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		DataDir: filepath.Join(homeDir, ".due-helper"),
		Storage: StorageConfig{
			Backend:  "file",
			FileName: "taskData.json",
		},
		Display: DisplayConfig{
			DefaultColor:   domain.DefaultColor,
			ShowCompleted:  true,
			GroupByDefault: true,
		},
		Language: "en",
	}
}

// SettingsPath returns the location of the settings file inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, "settings.json")
}

// DataFilePath returns the task snapshot location for the configured
// backend.
func (c *Config) DataFilePath() string {
	name := c.Storage.FileName
	if name == "" {
		name = "taskData.json"
	}
	if c.Storage.Backend == "bolt" {
		name = "taskData.db"
	}
	return filepath.Join(c.DataDir, name)
}

// LogDir returns the directory application logs are written to.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// LoadConfig loads configuration from dir with priority:
// 1. settings.json in dir (with version migration support)
// 2. Defaults
func LoadConfig(dir string) (*Config, error) {
	settingsPath := SettingsPath(dir)
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", settingsPath, err)
	}

	cfg, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", settingsPath, err)
	}
	return MergeWithDefaults(cfg), nil
}

// SaveConfig saves configuration to the specified path with version
// information, creating the parent directory if needed.
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.DataDir == "" {
		cfg.DataDir = defaults.DataDir
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.FileName == "" {
		cfg.Storage.FileName = defaults.Storage.FileName
	}
	if cfg.Display.DefaultColor == "" {
		cfg.Display.DefaultColor = defaults.Display.DefaultColor
	}
	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}

	return cfg
}

// Load is a convenience function that loads config from the default
// data directory.
func Load() (*Config, error) {
	return LoadConfig(DefaultConfig().DataDir)
}

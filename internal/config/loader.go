package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "dirview"
	// ConfigFile is the config file name
	ConfigFile = "config.json"

	envLogLevel         = "DIRVIEW_LOG_LEVEL"
	envSearchMaxResults = "DIRVIEW_SEARCH_MAX_RESULTS"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	Getenv(key string) string
}

// OSFileSystem implements FileSystem using the real OS
type OSFileSystem struct{}

func (OSFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: OSFileSystem{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads ~/.config/dirview/config.json over the defaults, then applies
// environment overrides. A missing file yields the defaults; malformed JSON
// and invalid values are errors.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if homeDir, err := l.fs.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
		data, err := l.fs.ReadFile(configPath)
		switch {
		case err == nil:
			// Present keys overwrite defaults (even if zero); missing keys keep them.
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", configPath, err)
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) error {
	if v := l.fs.Getenv(envLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := l.fs.Getenv(envSearchMaxResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envSearchMaxResults, err)
		}
		cfg.Search.MaxResults = n
	}
	return nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}

package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	localStoreDir  = "dirview"
	localStoreFile = "settings.json"
)

// LocalStore is a small JSON key-value file used when per-folder settings
// are unavailable.
type LocalStore struct {
	mu   sync.Mutex
	path string
}

// NewLocalStore returns a store backed by the file at path.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

// DefaultLocalStorePath is ~/.config/dirview/settings.json.
func DefaultLocalStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", localStoreDir, localStoreFile), nil
}

// Path returns the backing file location.
func (s *LocalStore) Path() string {
	return s.path
}

// Get returns the settings stored under key.
func (s *LocalStore) Get(key string) (PerspectiveSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readLocked()
	if err != nil {
		return PerspectiveSettings{}, err
	}
	raw, ok := values[key]
	if !ok {
		return PerspectiveSettings{}, ErrNoSettings
	}
	return Decode(raw)
}

// Set stores ps under key, keeping other keys intact. A malformed existing
// file is replaced.
func (s *LocalStore) Set(key string, ps PerspectiveSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readLocked()
	if err != nil {
		values = map[string]any{}
	}
	values[key] = ps.toMap()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("cannot create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data)
}

func (s *LocalStore) readLocked() (map[string]any, error) {
	if s.path == "" {
		return nil, ErrNoSettings
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSettings
		}
		return nil, fmt.Errorf("cannot read settings %s: %w", s.path, err)
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("malformed settings %s: %w", s.path, err)
	}
	if values == nil {
		return nil, ErrNoSettings
	}
	return values, nil
}

package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
	Env         map[string]string
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *MockFileSystem) Getenv(key string) string {
	return m.Env[key]
}

const configPath = "/home/user/.config/dirview/config.json"

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user"})

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialOverride_KeepsOtherDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			configPath: []byte(`{"view": {"sort_by": "byFileSize", "ascending": false}, "settings": {"enhanced": false}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "byFileSize", cfg.View.SortBy)
	assert.False(t, cfg.View.Ascending)
	assert.False(t, cfg.Settings.Enhanced)
	assert.True(t, cfg.View.FoldersFirst)
	assert.Equal(t, "grid", cfg.View.Perspective)
	assert.Equal(t, 10000, cfg.Search.MaxResults)
}

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{configPath: []byte(`{"view": `)},
	}

	_, err := NewLoaderWithFS(fs).Load()
	assert.Error(t, err)
}

func TestLoad_PermissionError_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", ReadFileErr: os.ErrPermission}

	_, err := NewLoaderWithFS(fs).Load()
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoad_NoHomeDir_UsesDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}

	cfg, err := NewLoaderWithFS(fs).Load()
	require.NoError(t, err)
	assert.Equal(t, "byName", cfg.View.SortBy)
}

func TestLoad_InvalidValues_FailValidation(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			configPath: []byte(`{"view": {"perspective": "gallery", "sort_by": "byColor"}, "search": {"max_results": 0}}`),
		},
	}

	_, err := NewLoaderWithFS(fs).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "view.perspective")
	assert.Contains(t, err.Error(), "view.sort_by")
	assert.Contains(t, err.Error(), "search.max_results")
}

func TestLoad_EnvOverrides(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Env: map[string]string{
			"DIRVIEW_LOG_LEVEL":          "debug",
			"DIRVIEW_SEARCH_MAX_RESULTS": "25",
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 25, cfg.Search.MaxResults)
}

func TestLoad_BadEnvNumber(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Env:     map[string]string{"DIRVIEW_SEARCH_MAX_RESULTS": "many"},
	}

	_, err := NewLoaderWithFS(fs).Load()
	assert.Error(t, err)
}

func TestDefaultViewSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.View.SortBy = "size"
	cfg.View.Ascending = false

	ps := cfg.DefaultViewSettings()
	assert.Equal(t, "byFileSize", ps.SortBy)
	require.NotNil(t, ps.OrderBy)
	assert.False(t, *ps.OrderBy)
	assert.True(t, ps.DirectoriesVisible())
}

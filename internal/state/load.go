package state

import (
	"errors"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
	"github.com/kk-code-lab/dirview/internal/logging"
	"github.com/kk-code-lab/dirview/internal/settings"
	"go.uber.org/zap"
)

// LoadDirectory reads a directory synchronously into the provided AppState.
func LoadDirectory(state *AppState, path ...string) error {
	dirPath := state.CurrentPath
	if len(path) > 0 {
		dirPath = path[0]
	}

	entries, meta, err := readDirectoryEntries(dirPath)
	if err != nil {
		return err
	}

	state.applyDirectory(dirPath, entries, meta)
	return nil
}

// readDirectoryEntries reads the listing and its folder meta. An unreadable
// or malformed meta file is logged and treated as absent.
func readDirectoryEntries(dirPath string) ([]FileEntry, map[string]any, error) {
	entries, err := fsutil.ReadDirectory(dirPath)
	if err != nil {
		return nil, nil, err
	}

	meta, err := settings.ReadFolderMeta(dirPath)
	if err != nil {
		if !errors.Is(err, settings.ErrNoSettings) {
			logging.Warn("ignoring folder meta", zap.String("dir", dirPath), zap.Error(err))
		}
		meta = nil
	}
	return entries, meta, nil
}

// applyDirectory swaps in a new listing. Search mode does not survive a
// directory change.
func (s *AppState) applyDirectory(dirPath string, entries []FileEntry, meta map[string]any) {
	s.CurrentPath = dirPath
	if entries == nil {
		entries = []FileEntry{}
	}
	s.Entries = entries
	s.SetDirectoryMeta(meta)

	s.FilterActive = false
	s.FilterQuery = ""
	s.clearSearch()
	s.loadViewSettings()
	s.resetViewport()

	logging.Debug("directory loaded",
		zap.String("dir", dirPath),
		zap.Int("entries", len(entries)),
		zap.String("sortBy", string(s.SortBy)),
	)
}

// RefreshDirectory re-reads the current directory keeping filter, search
// state and selection.
func (s *AppState) RefreshDirectory() error {
	entries, meta, err := readDirectoryEntries(s.CurrentPath)
	if err != nil {
		return err
	}
	prev := s.selectedPath()
	s.Entries = entries
	s.SetDirectoryMeta(meta)
	s.selectPath(prev)
	return nil
}

package state

import "path/filepath"

// navigationPath is the directory navigation starts from: the one being
// loaded if a read is in flight, else the current one.
func (s *AppState) navigationPath() string {
	if p := s.LoadingPath(); p != "" {
		return p
	}
	return s.CurrentPath
}

func (s *AppState) resetViewport() {
	s.SelectedIndex = 0
	s.ScrollOffset = 0
	if len(s.getDisplayFiles()) == 0 {
		s.SelectedIndex = -1
	}
}

func (s *AppState) moveSelection(delta int) {
	files := s.getDisplayFiles()
	if len(files) == 0 {
		s.SelectedIndex = -1
		return
	}

	idx := s.SelectedIndex
	if idx < 0 {
		if delta < 0 {
			idx = len(files) - 1
		} else {
			idx = 0
		}
	} else {
		idx += delta
	}

	if idx < 0 {
		idx = 0
	}
	if idx >= len(files) {
		idx = len(files) - 1
	}
	s.SelectedIndex = idx
	s.updateScrollVisibility()
}

// CurrentFilePath returns the selected entry's path, or the current directory.
func (s *AppState) CurrentFilePath() string {
	if file := s.getCurrentFile(); file != nil {
		return file.Path
	}
	current := s.CurrentPath
	if current == "" {
		current = "."
	}
	return filepath.Clean(current)
}

package state

import search "github.com/kk-code-lab/dirview/internal/search"

// invalidateDisplayFilesCache marks the display files cache as dirty.
// Call it whenever an input of the derived listing changes.
func (s *AppState) invalidateDisplayFilesCache() {
	s.displayFilesDirty = true
	s.displayFilesCache = nil
}

func (s *AppState) resolveInput() ResolveInput {
	return ResolveInput{
		Entries:             s.Entries,
		SortBy:              s.SortBy,
		OrderBy:             s.OrderBy,
		SearchFilter:        s.FilterQuery,
		LastSearchTimestamp: s.LastSearchTimestamp,
		MetaRevision:        s.metaRevision,
	}
}

// resultProvider avoids handing a typed nil *Searcher to the resolver.
func (s *AppState) resultProvider() search.ResultProvider {
	if s.Searcher == nil {
		return nil
	}
	return s.Searcher
}

func (s *AppState) getDisplayFiles() []FileEntry {
	if !s.displayFilesDirty && s.displayFilesCache != nil {
		result := make([]FileEntry, len(s.displayFilesCache))
		copy(result, s.displayFilesCache)
		return result
	}

	if s.resolver == nil {
		s.resolver = NewResolver(s.sortFn)
	}
	files := s.resolver.Resolve(s.resolveInput(), s.resultProvider())

	if s.HideHiddenFiles || !s.ShowDirectories {
		visible := files[:0]
		for _, f := range files {
			if s.HideHiddenFiles && f.IsHidden() {
				continue
			}
			if !s.ShowDirectories && f.IsDir() {
				continue
			}
			visible = append(visible, f)
		}
		files = visible
	}

	s.displayFilesCache = files
	s.displayFilesDirty = false

	result := make([]FileEntry, len(files))
	copy(result, files)
	return result
}

// DisplayFiles returns the resolved listing with hidden entries (and
// directories, when switched off) removed.
func (s *AppState) DisplayFiles() []FileEntry {
	return s.getDisplayFiles()
}

func (s *AppState) getCurrentFile() *FileEntry {
	files := s.getDisplayFiles()
	if s.SelectedIndex >= 0 && s.SelectedIndex < len(files) {
		return &files[s.SelectedIndex]
	}
	return nil
}

// CurrentFile returns the selected entry, or nil when nothing is selected.
func (s *AppState) CurrentFile() *FileEntry {
	return s.getCurrentFile()
}

func (s *AppState) selectedPath() string {
	if f := s.getCurrentFile(); f != nil {
		return f.Path
	}
	return ""
}

// selectPath moves the selection onto path, or clamps it when path is gone.
func (s *AppState) selectPath(path string) {
	files := s.getDisplayFiles()
	if len(files) == 0 {
		s.SelectedIndex = -1
		s.ScrollOffset = 0
		return
	}

	if path != "" {
		for idx, f := range files {
			if f.Path == path {
				s.SelectedIndex = idx
				s.updateScrollVisibility()
				return
			}
		}
	}

	switch {
	case s.SelectedIndex < 0:
		s.SelectedIndex = 0
	case s.SelectedIndex >= len(files):
		s.SelectedIndex = len(files) - 1
	}
	s.updateScrollVisibility()
}

// viewChanged invalidates the listing and keeps the selection on the same entry.
func (s *AppState) viewChanged() {
	prev := s.selectedPath()
	s.invalidateDisplayFilesCache()
	s.selectPath(prev)
}

func (s *AppState) visibleLines() int {
	lines := s.ScreenHeight - 4
	if lines < 1 {
		lines = 1
	}
	return lines
}

func (s *AppState) updateScrollVisibility() {
	displayIdx := s.SelectedIndex
	visibleLines := s.visibleLines()

	if displayIdx < 0 {
		return
	}

	if displayIdx < s.ScrollOffset {
		s.ScrollOffset = displayIdx
	} else if displayIdx >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = displayIdx - visibleLines + 1
	}

	s.clampScroll(len(s.getDisplayFiles()))
}

func (s *AppState) centerScrollOnSelection() {
	if s.SelectedIndex < 0 {
		return
	}
	s.ScrollOffset = s.SelectedIndex - s.visibleLines()/2
	s.clampScroll(len(s.getDisplayFiles()))
}

func (s *AppState) clampScroll(total int) {
	maxOffset := total - s.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
}

package state

import (
	"strings"
	"time"

	search "github.com/kk-code-lab/dirview/internal/search"
)

// CleanSearchQuery returns the prompt text without surrounding whitespace.
func (s *AppState) CleanSearchQuery() string {
	return strings.TrimSpace(s.SearchQuery)
}

// ensureSearcher returns a searcher rooted at the current directory.
func (s *AppState) ensureSearcher() *search.Searcher {
	if s.Searcher == nil || s.Searcher.RootPath() != s.CurrentPath ||
		s.Searcher.Options().HideHidden != s.HideHiddenFiles {
		if s.Searcher != nil {
			s.Searcher.Cancel()
		}
		s.Searcher = search.NewSearcher(s.CurrentPath, search.Options{
			HideHidden: s.HideHiddenFiles,
			MaxResults: s.SearchOptions.MaxResults,
		})
	}
	return s.Searcher
}

// completeSearch enters search mode with results already stored in the searcher.
func (s *AppState) completeSearch(query string, at time.Time) {
	s.SearchInProgress = false
	s.LastSearchQuery = query
	s.LastSearchTimestamp = at
	s.invalidateDisplayFilesCache()
	s.SelectedIndex = 0
	s.ScrollOffset = 0
	s.selectPath("")
}

// clearSearch leaves search mode and returns to the sorted directory listing.
func (s *AppState) clearSearch() {
	prev := s.selectedPath()
	if s.Searcher != nil {
		s.Searcher.Reset()
	}
	s.SearchActive = false
	s.SearchQuery = ""
	s.SearchInProgress = false
	s.LastSearchQuery = ""
	s.LastSearchTimestamp = time.Time{}
	s.searchToken = 0
	s.invalidateDisplayFilesCache()
	s.selectPath(prev)
}

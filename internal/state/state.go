package state

import (
	"time"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
	search "github.com/kk-code-lab/dirview/internal/search"
	"github.com/kk-code-lab/dirview/internal/settings"
	"github.com/kk-code-lab/dirview/internal/sorting"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	CurrentPath   string
	Entries       []FileEntry    // Raw listing in read order; replaced, never edited
	DirectoryMeta map[string]any // Opaque per-folder blob from .ts/tsm.json
	metaRevision  uint64

	// View settings of the active perspective
	Perspective     settings.Perspective
	SortBy          sorting.Criterion
	OrderBy         *bool
	ShowDirectories bool
	HideHiddenFiles bool
	Settings        settings.Store
	DefaultSettings settings.PerspectiveSettings

	// Selection & viewport (indices into the displayed listing)
	SelectedIndex int
	ScrollOffset  int

	// Filtering
	FilterActive bool // Filter prompt is open
	FilterQuery  string

	// Search
	SearchActive        bool // Search prompt is open
	SearchQuery         string
	SearchInProgress    bool
	LastSearchQuery     string
	LastSearchTimestamp time.Time
	Searcher            *search.Searcher
	SearchOptions       search.Options
	searchToken         int

	// Directory loading
	DirectoryLoader     DirectoryLoader
	directoryLoadToken  int
	directoryLoadPath   string
	directoryLoadActive bool
	dispatchAction      func(Action)

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Error state
	LastError error

	// Application capabilities & overlays
	HelpVisible        bool
	ClipboardAvailable bool
	EditorAvailable    bool
	LastYankTime       time.Time

	// Display files cache
	resolver          *Resolver
	sortFn            sorting.Func
	displayFilesCache []FileEntry
	displayFilesDirty bool
}

// NewAppState creates a state rooted at path with default view settings.
func NewAppState(path string) *AppState {
	return &AppState{
		CurrentPath:       path,
		Entries:           []FileEntry{},
		Perspective:       settings.DefaultPerspective,
		SortBy:            sorting.DefaultCriterion,
		ShowDirectories:   true,
		HideHiddenFiles:   true,
		displayFilesDirty: true,
	}
}

// ===== HELPER METHODS =====

func (s *AppState) setDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.setDispatch(fn)
}

// SetSortFunc replaces the sort utility used to derive the listing.
func (s *AppState) SetSortFunc(fn sorting.Func) {
	s.sortFn = fn
	s.resolver = nil
	s.invalidateDisplayFilesCache()
}

// SetDirectoryMeta replaces the per-folder blob and bumps its revision.
func (s *AppState) SetDirectoryMeta(meta map[string]any) {
	s.DirectoryMeta = meta
	s.metaRevision++
	s.invalidateDisplayFilesCache()
}

// InSearchMode reports whether filter text or completed search results drive the listing.
func (s *AppState) InSearchMode() bool {
	return s.resolveInput().SearchMode()
}

// SearchCompleted reports whether search results are available.
func (s *AppState) SearchCompleted() bool {
	return !s.LastSearchTimestamp.IsZero()
}

// Ascending resolves the tri-state order.
func (s *AppState) Ascending() bool {
	return sorting.Ascending(s.OrderBy)
}

// ActiveDirectoryLoadToken returns the token of the in-flight directory read, or 0.
func (s *AppState) ActiveDirectoryLoadToken() int {
	if !s.directoryLoadActive {
		return 0
	}
	return s.directoryLoadToken
}

// DirectoryLoading reports whether a directory read is in flight.
func (s *AppState) DirectoryLoading() bool {
	return s.directoryLoadActive
}

// LoadingPath returns the path being read, if any.
func (s *AppState) LoadingPath() string {
	if !s.directoryLoadActive {
		return ""
	}
	return s.directoryLoadPath
}

func (s *AppState) nextDirectoryLoadToken() int {
	s.directoryLoadToken++
	return s.directoryLoadToken
}

func (s *AppState) setDirectoryLoadInFlight(token int, path string) {
	s.directoryLoadToken = token
	s.directoryLoadPath = path
	s.directoryLoadActive = true
}

func (s *AppState) clearDirectoryLoad() {
	s.directoryLoadActive = false
	s.directoryLoadPath = ""
}

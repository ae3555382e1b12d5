package state

import (
	search "github.com/kk-code-lab/dirview/internal/search"
	"github.com/kk-code-lab/dirview/internal/settings"
	"github.com/kk-code-lab/dirview/internal/sorting"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}
type SelectIndexAction struct {
	Index int // Index into the displayed listing
}
type EnterDirectoryAction struct{}
type GoUpAction struct{}
type GoToPathAction struct {
	Path string
}
type GoHomeAction struct{}
type RefreshAction struct{}

// DirectoryLoadResultAction delivers an asynchronous directory read.
type DirectoryLoadResultAction DirectoryLoadResult

// ===== FILTER ACTIONS =====

type FilterStartAction struct{}
type FilterCharAction struct {
	Char rune
}
type FilterBackspaceAction struct{}
type FilterConfirmAction struct{} // Close the prompt, keep the filter
type FilterClearAction struct{}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchSubmitAction struct{}
type SearchCancelPromptAction struct{}
type SearchResultsAction struct {
	Completion search.Completion
}
type SearchClearAction struct{}

// ===== VIEW ACTIONS =====

type SetSortByAction struct {
	Criterion sorting.Criterion
}
type CycleSortAction struct{}
type SetOrderAction struct {
	Order *bool // nil restores the default order
}
type ToggleOrderAction struct{}
type SetPerspectiveAction struct {
	Perspective settings.Perspective
}
type CyclePerspectiveAction struct{}
type ToggleHiddenFilesAction struct{}
type ToggleDirectoriesAction struct{}

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== APPLICATION ACTIONS =====
// Handled by the application loop; the reducer treats them as no-ops.

type OpenAction struct{} // Enter a directory or edit a file
type OpenEditorAction struct{}
type YankPathAction struct{}
type SuspendAction struct{}
type QuitAction struct{}

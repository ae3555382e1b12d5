package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	search "github.com/kk-code-lab/dirview/internal/search"
	"github.com/kk-code-lab/dirview/internal/sorting"
)

type directoryPostLoadFunc func(*StateReducer, *AppState) error

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	selectionHistory   map[string]string // directory -> selected entry path
	directoryCallbacks map[int][]directoryPostLoadFunc
}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{
		selectionHistory:   make(map[string]string),
		directoryCallbacks: make(map[int][]directoryPostLoadFunc),
	}
}

func (r *StateReducer) enqueueDirectoryCallback(token int, fn directoryPostLoadFunc) {
	if token == 0 || fn == nil {
		return
	}
	r.directoryCallbacks[token] = append(r.directoryCallbacks[token], fn)
}

func (r *StateReducer) dropDirectoryCallbacks(token int) {
	if token == 0 {
		return
	}
	delete(r.directoryCallbacks, token)
}

func (r *StateReducer) runDirectoryCallbacks(state *AppState, token int) error {
	callbacks, ok := r.directoryCallbacks[token]
	if !ok {
		return nil
	}
	delete(r.directoryCallbacks, token)

	for _, cb := range callbacks {
		if err := cb(r, state); err != nil {
			return err
		}
	}
	return nil
}

// changeDirectory reads path synchronously when no loader is wired, otherwise
// starts an asynchronous read and defers post to its completion.
func (r *StateReducer) changeDirectory(state *AppState, path string, post directoryPostLoadFunc) (*AppState, error) {
	dirPath := filepath.Clean(path)

	loader := state.DirectoryLoader
	dispatch := state.getDispatch()
	if loader == nil || dispatch == nil {
		if err := LoadDirectory(state, dirPath); err != nil {
			return state, err
		}
		if post != nil {
			return state, post(r, state)
		}
		return state, nil
	}

	if prevToken := state.ActiveDirectoryLoadToken(); prevToken != 0 {
		loader.Cancel(prevToken)
		r.dropDirectoryCallbacks(prevToken)
	}

	token := state.nextDirectoryLoadToken()
	state.setDirectoryLoadInFlight(token, dirPath)
	r.enqueueDirectoryCallback(token, post)

	loader.Start(DirectoryLoadRequest{
		Token: token,
		Path:  dirPath,
		Callback: func(result DirectoryLoadResult) {
			dispatch(DirectoryLoadResultAction(result))
		},
	})
	return state, nil
}

func (r *StateReducer) restoreSelection(state *AppState, dir string, preferName string) {
	if preferName != "" {
		for idx, f := range state.getDisplayFiles() {
			if f.Name == preferName {
				state.SelectedIndex = idx
				state.centerScrollOnSelection()
				return
			}
		}
	}
	if saved, ok := r.selectionHistory[dir]; ok {
		state.selectPath(saved)
	}
	state.centerScrollOnSelection()
}

// Reduce applies action to state in place and returns it.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		state.moveSelection(1)
		return state, nil

	case NavigateUpAction:
		state.moveSelection(-1)
		return state, nil

	case ScrollPageDownAction:
		state.moveSelection(state.visibleLines())
		return state, nil

	case ScrollPageUpAction:
		state.moveSelection(-state.visibleLines())
		return state, nil

	case ScrollToStartAction:
		state.moveSelection(-len(state.getDisplayFiles()))
		return state, nil

	case ScrollToEndAction:
		state.moveSelection(len(state.getDisplayFiles()))
		return state, nil

	case SelectIndexAction:
		files := state.getDisplayFiles()
		if a.Index < 0 || a.Index >= len(files) {
			return state, nil
		}
		state.SelectedIndex = a.Index
		state.updateScrollVisibility()
		return state, nil

	case EnterDirectoryAction:
		file := state.getCurrentFile()
		if file == nil || file.IsFile {
			return state, nil
		}
		r.selectionHistory[state.CurrentPath] = file.Path
		target := file.Path
		return r.changeDirectory(state, target, func(r *StateReducer, state *AppState) error {
			r.restoreSelection(state, target, "")
			return nil
		})

	case GoUpAction:
		current := state.navigationPath()
		parent := filepath.Dir(current)
		if parent == current {
			return state, nil
		}
		r.selectionHistory[state.CurrentPath] = state.selectedPath()
		cameFrom := filepath.Base(current)
		return r.changeDirectory(state, parent, func(r *StateReducer, state *AppState) error {
			r.restoreSelection(state, parent, cameFrom)
			return nil
		})

	case GoToPathAction:
		if a.Path == "" {
			return state, nil
		}
		target := filepath.Clean(a.Path)
		if target == state.navigationPath() {
			return state, nil
		}
		r.selectionHistory[state.CurrentPath] = state.selectedPath()
		return r.changeDirectory(state, target, func(r *StateReducer, state *AppState) error {
			r.restoreSelection(state, target, "")
			return nil
		})

	case GoHomeAction:
		home, err := os.UserHomeDir()
		if err != nil {
			return state, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		return r.Reduce(state, GoToPathAction{Path: home})

	case RefreshAction:
		return state, state.RefreshDirectory()

	case DirectoryLoadResultAction:
		if a.Token != state.ActiveDirectoryLoadToken() {
			return state, nil // stale read
		}
		state.clearDirectoryLoad()
		if a.Err != nil {
			r.dropDirectoryCallbacks(a.Token)
			return state, a.Err
		}
		state.applyDirectory(a.Path, a.Entries, a.Meta)
		return state, r.runDirectoryCallbacks(state, a.Token)

	// ===== FILTER =====

	case FilterStartAction:
		if state.SearchActive {
			return state, nil
		}
		state.FilterActive = true
		return state, nil

	case FilterCharAction:
		if !state.FilterActive {
			return state, nil
		}
		state.setFilterQuery(state.FilterQuery + string(a.Char))
		return state, nil

	case FilterBackspaceAction:
		if !state.FilterActive {
			return state, nil
		}
		runes := []rune(state.FilterQuery)
		if len(runes) == 0 {
			state.FilterActive = false
			return state, nil
		}
		state.setFilterQuery(string(runes[:len(runes)-1]))
		return state, nil

	case FilterConfirmAction:
		state.FilterActive = false
		return state, nil

	case FilterClearAction:
		state.clearFilter()
		return state, nil

	// ===== SEARCH =====

	case SearchStartAction:
		state.FilterActive = false
		state.SearchActive = true
		if state.SearchQuery == "" {
			state.SearchQuery = state.LastSearchQuery
		}
		return state, nil

	case SearchCharAction:
		if !state.SearchActive {
			return state, nil
		}
		state.SearchQuery += string(a.Char)
		return state, nil

	case SearchBackspaceAction:
		if !state.SearchActive {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		if len(runes) > 0 {
			state.SearchQuery = string(runes[:len(runes)-1])
		}
		return state, nil

	case SearchCancelPromptAction:
		state.SearchActive = false
		state.SearchQuery = ""
		return state, nil

	case SearchSubmitAction:
		return state, r.submitSearch(state)

	case SearchResultsAction:
		c := a.Completion
		if c.Token != state.searchToken {
			return state, nil // superseded
		}
		state.SearchInProgress = false
		if c.Err != nil {
			return state, fmt.Errorf("search %q: %w", c.Query, c.Err)
		}
		state.completeSearch(c.Query, c.CompletedAt)
		return state, nil

	case SearchClearAction:
		state.clearSearch()
		return state, nil

	// ===== VIEW =====

	case SetSortByAction:
		return state, state.setSortBy(a.Criterion)

	case CycleSortAction:
		return state, state.setSortBy(state.SortBy.Next())

	case SetOrderAction:
		return state, state.setOrderBy(a.Order)

	case ToggleOrderAction:
		return state, state.setOrderBy(sorting.Order(!state.Ascending()))

	case SetPerspectiveAction:
		state.setPerspective(a.Perspective)
		return state, nil

	case CyclePerspectiveAction:
		state.setPerspective(state.Perspective.Next())
		return state, nil

	case ToggleHiddenFilesAction:
		state.HideHiddenFiles = !state.HideHiddenFiles
		state.viewChanged()
		return state, nil

	case ToggleDirectoriesAction:
		return state, state.setShowDirectories(!state.ShowDirectories)

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil

	case OpenAction, OpenEditorAction, YankPathAction, SuspendAction, QuitAction:
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

func (r *StateReducer) submitSearch(state *AppState) error {
	query := state.CleanSearchQuery()
	state.SearchActive = false
	if query == "" {
		return nil
	}

	searcher := state.ensureSearcher()
	state.SearchInProgress = true

	if dispatch := state.getDispatch(); dispatch != nil {
		state.searchToken = searcher.Start(query, func(c search.Completion) {
			dispatch(SearchResultsAction{Completion: c})
		})
		return nil
	}

	_, err := searcher.Search(context.Background(), query)
	state.SearchInProgress = false
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			return nil
		}
		return fmt.Errorf("search %q: %w", query, err)
	}
	state.completeSearch(query, searcher.CompletedAt())
	return nil
}

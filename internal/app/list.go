package app

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/kk-code-lab/dirview/internal/config"
	"github.com/kk-code-lab/dirview/internal/settings"
	"github.com/kk-code-lab/dirview/internal/sorting"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	renderui "github.com/kk-code-lab/dirview/internal/ui/render"
)

const defaultListWidth = 100

// ListOptions drive a one-shot, non-interactive listing. Empty fields keep
// whatever the settings chain resolves for the directory.
type ListOptions struct {
	Config      *config.Config
	Settings    settings.Store
	Path        string
	Perspective string
	SortBy      string
	Descending  bool
	Filter      string
	Search      string
	Width       int
}

// List prints the resolved listing of opts.Path, one entry per line.
// Overrides are applied in memory only and never persisted.
func List(w io.Writer, opts ListOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	state := newInitialState(path, cfg, opts.Settings, false, false)
	if opts.Perspective != "" {
		p, ok := settings.ParsePerspective(opts.Perspective)
		if !ok {
			return fmt.Errorf("unknown perspective %q", opts.Perspective)
		}
		state.Perspective = p
	}
	if err := statepkg.LoadDirectory(state); err != nil {
		return err
	}
	state.Settings = nil

	actions, err := listActions(opts)
	if err != nil {
		return err
	}
	reducer := statepkg.NewStateReducer()
	for _, action := range actions {
		if _, err := reducer.Reduce(state, action); err != nil {
			return err
		}
	}

	width := opts.Width
	if width <= 0 {
		width = defaultListWidth
	}
	cols := renderui.ComputeColumns(width, settings.PerspectiveList)
	for _, f := range state.DisplayFiles() {
		if _, err := fmt.Fprintln(w, renderui.FormatRow(f, cols).String()); err != nil {
			return err
		}
	}
	return nil
}

// listActions replays the overrides as the keystrokes a user would type.
// The search runs before the filter so the filter narrows its results.
func listActions(opts ListOptions) ([]statepkg.Action, error) {
	var actions []statepkg.Action
	if opts.SortBy != "" {
		c, ok := sorting.ParseCriterion(opts.SortBy)
		if !ok {
			return nil, fmt.Errorf("unknown sort criterion %q", opts.SortBy)
		}
		actions = append(actions, statepkg.SetSortByAction{Criterion: c})
	}
	if opts.Descending {
		actions = append(actions, statepkg.SetOrderAction{Order: sorting.Order(false)})
	}
	if opts.Search != "" {
		actions = append(actions, statepkg.SearchStartAction{})
		for _, r := range opts.Search {
			actions = append(actions, statepkg.SearchCharAction{Char: r})
		}
		actions = append(actions, statepkg.SearchSubmitAction{})
	}
	if opts.Filter != "" {
		actions = append(actions, statepkg.FilterStartAction{})
		for _, r := range opts.Filter {
			actions = append(actions, statepkg.FilterCharAction{Char: r})
		}
		actions = append(actions, statepkg.FilterConfirmAction{})
	}
	return actions, nil
}

package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/dirview/internal/state"
	"github.com/kk-code-lab/dirview/internal/textutil"
)

// SortIndicator describes the active ordering, e.g. "name ↑".
func SortIndicator(state *statepkg.AppState) string {
	arrow := "↑"
	if !state.Ascending() {
		arrow = "↓"
	}
	return state.SortBy.Label() + " " + arrow
}

// viewIndicator is the right-hand header summary.
func viewIndicator(state *statepkg.AppState) string {
	parts := []string{string(state.Perspective), SortIndicator(state)}
	if !state.HideHiddenFiles {
		parts = append(parts, "hidden shown")
	}
	if !state.ShowDirectories {
		parts = append(parts, "files only")
	}
	return strings.Join(parts, " · ")
}

// formatSearchStatus summarizes search mode for the info line.
func formatSearchStatus(state *statepkg.AppState, shown int) string {
	var parts []string
	switch {
	case state.SearchInProgress:
		parts = append(parts, fmt.Sprintf("searching %q…", textutil.SanitizeName(state.CleanSearchQuery())))
	case state.SearchCompleted():
		parts = append(parts, fmt.Sprintf("results for %q", textutil.SanitizeName(state.LastSearchQuery)))
	}
	if state.FilterQuery != "" && !state.FilterActive {
		parts = append(parts, "filter "+textutil.SanitizeName(state.FilterQuery))
	}
	if len(parts) == 0 {
		return ""
	}
	parts = append(parts, formatCount(shown))
	return strings.Join(parts, " · ")
}

func formatCount(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func formatLoading(state *statepkg.AppState) string {
	if !state.DirectoryLoading() {
		return ""
	}
	return "loading " + textutil.SanitizeName(state.LoadingPath()) + "…"
}

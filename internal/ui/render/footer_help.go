package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/dirview/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.SearchActive:
		return []string{
			"type: query",
			"↵: search",
			"Esc: cancel",
		}
	case state.FilterActive:
		return []string{
			"type: filter",
			"↵: keep filter",
			"Esc: clear filter",
		}
	case state.InSearchMode():
		return []string{
			"↑/↓/↵: navigate",
			"/: filter results",
			"s/o: sort/order",
			"Esc: back to listing",
		}
	default:
		return []string{
			"↑/↓/↵/←: navigate",
			"/: filter",
			"f: search",
			"s/o: sort/order",
			"v: view",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state.FilterActive || state.SearchActive {
		return nil
	}

	hiddenStatus := "show"
	if !state.HideHiddenFiles {
		hiddenStatus = "hide"
	}

	segments := []string{fmt.Sprintf(".: %s hidden", hiddenStatus)}
	if state.ClipboardAvailable {
		segments = append(segments, "y: yank path")
	}
	if state.EditorAvailable {
		segments = append(segments, "e: edit")
	}
	return append(segments, "?: help", "q: quit")
}

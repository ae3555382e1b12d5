package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	"github.com/kk-code-lab/dirview/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	hiddenDesc := "Hide hidden files"
	if state != nil && state.HideHiddenFiles {
		hiddenDesc = "Show hidden files"
	}
	dirsDesc := "Hide directories"
	if state != nil && !state.ShowDirectories {
		dirsDesc = "Show directories"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ k/j", desc: "Move selection"},
				{keys: "PgUp/PgDn", desc: "Move by a page"},
				{keys: "Home/End g/G", desc: "First / last entry"},
				{keys: "↵ or →", desc: "Open directory or edit file"},
				{keys: "← or Bksp", desc: "Parent directory"},
				{keys: "~", desc: "Go home"},
			},
		},
		{
			title: "Filter & Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Filter entries by name"},
				{keys: "f", desc: "Search below this directory"},
				{keys: "Esc", desc: "Clear filter, then leave search results"},
			},
		},
		{
			title: "View",
			entries: []helpOverlayEntry{
				{keys: "s / S", desc: "Next sort criterion / sort by relevance"},
				{keys: "o", desc: "Toggle ascending / descending"},
				{keys: "v", desc: "Next perspective (grid, list, kanban)"},
				{keys: ".", desc: hiddenDesc},
				{keys: "d", desc: dirsDesc},
				{keys: "r", desc: "Refresh directory"},
			},
		},
		{
			title: "Actions",
			entries: []helpOverlayEntry{
				{keys: "y", desc: "Yank path to clipboard"},
				{keys: "e", desc: "Open in external editor ($EDITOR)"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend to the shell"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	return fmt.Sprintf("  %s %s", textutil.Fit(entry.keys, 14), entry.desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	r.fillRect(0, 0, w, h, baseStyle)

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	titleStart := 0
	if titleWidth := textutil.DisplayWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawText(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines(state) {
		if row >= h-1 {
			break
		}
		text := textutil.Truncate(strings.TrimRight(line, " "), w-4)
		r.drawText(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		r.drawText(0, h-1, w, textutil.Truncate("? toggle · Esc/q close", w), headerStyle)
	}
}

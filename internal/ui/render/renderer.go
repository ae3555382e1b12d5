package render

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	"github.com/kk-code-lab/dirview/internal/textutil"
)

// AppName leads the header row.
const AppName = "dirview"

// YankFlashDuration is how long the status line confirms a copied path.
const YankFlashDuration = 1500 * time.Millisecond

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme

	layoutMu   sync.RWMutex
	lastLayout Layout
	hasLayout  bool
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// LastLayout returns the layout of the most recent frame.
func (r *Renderer) LastLayout() (Layout, bool) {
	r.layoutMu.RLock()
	defer r.layoutMu.RUnlock()
	return r.lastLayout, r.hasLayout
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	layout := computeLayout(w, h, state)
	files := state.DisplayFiles()

	r.drawHeader(state, w)
	r.drawInfoLine(state, w, len(files))
	r.drawFileList(state, files, layout)
	r.drawStatusLine(state, w, h)

	r.layoutMu.Lock()
	r.lastLayout = layout
	r.hasLayout = true
	r.layoutMu.Unlock()

	r.screen.Show()
}

// drawHeader renders the title, breadcrumb and the view summary on the right.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, w, headerRow, style)

	summary := " " + viewIndicator(state) + " "
	summaryWidth := textutil.DisplayWidth(summary)
	if summaryWidth > w/2 {
		summary, summaryWidth = "", 0
	}

	x := r.drawText(0, headerRow, w, AppName+" ", style.Bold(true))
	crumbWidth := w - x - summaryWidth
	if crumbWidth > 0 {
		crumb := strings.Join(FormatBreadcrumbSegments(state.CurrentPath), " › ")
		crumb = textutil.TruncateLeft(textutil.SanitizeName(crumb), crumbWidth)
		r.drawText(x, headerRow, crumbWidth, crumb, style)
	}
	if summary != "" {
		r.drawText(w-summaryWidth, headerRow, summaryWidth, summary, style.Foreground(r.theme.MetaFg))
	}
}

// FormatBreadcrumbSegments splits path into the segments shown in the header.
func FormatBreadcrumbSegments(path string) []string {
	if path == "" {
		return []string{"/"}
	}

	cleanPath := filepath.Clean(path)
	if cleanPath == "." {
		cleanPath = "/"
	}

	slashed := filepath.ToSlash(cleanPath)
	if slashed == "/" {
		return []string{"/"}
	}

	var segments []string
	if strings.HasPrefix(slashed, "/") {
		segments = append(segments, "/")
		slashed = strings.TrimPrefix(slashed, "/")
	}
	for _, part := range strings.Split(slashed, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 {
		return []string{cleanPath}
	}
	return segments
}

// drawInfoLine shows the open prompt, or the search/filter/loading summary.
func (r *Renderer) drawInfoLine(state *statepkg.AppState, w, shown int) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	cursorStyle := style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	r.fillRow(0, w, promptRow, style)

	var prompt, query string
	switch {
	case state.SearchActive:
		prompt, query = "search> ", state.SearchQuery
	case state.FilterActive:
		prompt, query = "/", state.FilterQuery
	}

	if prompt != "" {
		x := r.drawText(0, promptRow, w, prompt+textutil.SanitizeName(query), style)
		if x < w {
			r.screen.SetContent(x, promptRow, ' ', nil, cursorStyle)
			x++
		}
		if status := formatSearchStatus(state, shown); status != "" && x+2 < w {
			r.drawText(x+1, promptRow, w-x-1, "· "+status, style.Foreground(r.theme.MetaFg))
		}
		return
	}

	text := formatLoading(state)
	if text == "" {
		text = formatSearchStatus(state, shown)
	}
	if text != "" {
		r.drawText(1, promptRow, w-1, text, style.Foreground(r.theme.MetaFg))
	}
}

// drawFileList renders the resolved listing
func (r *Renderer) drawFileList(state *statepkg.AppState, files []statepkg.FileEntry, layout Layout) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background)
	visible := layout.ListEnd - layout.ListStart

	if len(files) == 0 && visible > 0 {
		msg := " (empty)"
		if state.InSearchMode() {
			msg = " no matches"
		}
		r.drawText(0, layout.ListStart, layout.Width, msg, baseStyle.Foreground(r.theme.MetaFg))
		return
	}

	y := layout.ListStart
	for idx := state.ScrollOffset; idx < len(files) && y < layout.ListEnd; idx++ {
		if idx < 0 {
			continue
		}
		r.drawEntryRow(state, files[idx], idx == state.SelectedIndex, layout, y, baseStyle)
		y++
	}
}

func (r *Renderer) drawEntryRow(state *statepkg.AppState, f statepkg.FileEntry, selected bool, layout Layout, y int, base tcell.Style) {
	nameStyle := base.Foreground(r.theme.FileFg)
	switch {
	case f.IsSymlink:
		nameStyle = base.Foreground(r.theme.SymlinkFg)
	case f.IsDir():
		nameStyle = base.Foreground(r.theme.DirectoryFg)
	}
	if f.IsHidden() {
		nameStyle = nameStyle.Foreground(r.theme.HiddenFg)
	}
	tagStyle := base.Foreground(r.theme.TagFg)
	metaStyle := base.Foreground(r.theme.MetaFg)
	matchStyle := nameStyle.Foreground(r.theme.MatchFg).Bold(true)

	if selected {
		sel := tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		nameStyle, tagStyle, metaStyle, matchStyle = sel, sel, sel, sel.Bold(true)
		r.fillRow(0, layout.Width, y, sel)
	}

	cells := FormatRow(f, layout.Columns)
	x := r.drawText(0, y, layout.Width, cells.Icon, nameStyle)
	spans := matchSpans(cells.Name, state.FilterQuery)
	x = r.drawHighlighted(x, y, layout.Columns.Name, cells.Name, spans, nameStyle, matchStyle)

	for _, cell := range []struct {
		text  string
		style tcell.Style
	}{
		{cells.Tags, tagStyle},
		{cells.Size, metaStyle},
		{cells.Modified, metaStyle},
	} {
		if cell.text == "" {
			continue
		}
		x += gutterColumns
		x = r.drawText(x, y, layout.Width-x, cell.text, cell.style)
	}
}

// drawStatusLine renders the selected path (or the last error) and help hints.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	pathY, helpY := h-2, h-1
	if pathY < listStartRow {
		return
	}
	r.fillRow(0, w, pathY, style)
	r.fillRow(0, w, helpY, style)

	if state.LastError != nil {
		msg := textutil.Truncate(textutil.SanitizeName("error: "+state.LastError.Error()), w)
		r.drawText(0, pathY, w, msg, style.Foreground(r.theme.ErrorFg))
	} else if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < YankFlashDuration {
		msg := textutil.TruncateLeft(textutil.SanitizeName("copied "+state.CurrentFilePath()), w)
		r.drawText(0, pathY, w, msg, style.Foreground(r.theme.MatchFg))
	} else {
		path := state.CurrentFilePath()
		if f := state.CurrentFile(); f != nil && f.IsSymlink {
			if target, err := filepath.EvalSymlinks(f.Path); err == nil {
				path += " → " + target
			}
		}
		r.drawText(0, pathY, w, textutil.TruncateLeft(textutil.SanitizeName(path), w), style)
	}

	help := textutil.Truncate(buildFooterHelpText(state), w)
	r.drawText(0, helpY, w, help, style.Foreground(r.theme.MetaFg))
}

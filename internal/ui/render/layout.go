package render

import (
	"strings"
	"time"

	"github.com/kk-code-lab/dirview/internal/settings"
	statepkg "github.com/kk-code-lab/dirview/internal/state"
	"github.com/kk-code-lab/dirview/internal/textutil"
)

// Screen rows: header, prompt/info line, listing, path line, help line.
const (
	headerRow     = 0
	promptRow     = 1
	listStartRow  = 2
	footerRows    = 2
	iconWidth     = 3
	sizeWidth     = 7
	dateWidth     = 17
	dateLayout    = "2006-01-02 15:04"
	minNameWidth  = 12
	maxTagsWidth  = 28
	gutterColumns = 1
)

// Columns are the widths of one listing row. A zero width hides the column.
type Columns struct {
	Name     int
	Tags     int
	Size     int
	Modified int
}

// Total is the row width including icon and gutters.
func (c Columns) Total() int {
	total := iconWidth + c.Name
	for _, w := range []int{c.Tags, c.Size, c.Modified} {
		if w > 0 {
			total += gutterColumns + w
		}
	}
	return total
}

// ComputeColumns fits listing columns to width. The list perspective shows
// details; grid and kanban stay compact with names and tags only.
func ComputeColumns(width int, p settings.Perspective) Columns {
	avail := width - iconWidth
	if avail < 1 {
		return Columns{}
	}

	cols := Columns{}
	if p == settings.PerspectiveList {
		cols.Size = sizeWidth
		cols.Modified = dateWidth
	}
	cols.Tags = avail / 4
	if cols.Tags > maxTagsWidth {
		cols.Tags = maxTagsWidth
	}

	for {
		cols.Name = 0
		cols.Name = width - cols.Total()
		if cols.Name >= minNameWidth {
			return cols
		}
		switch {
		case cols.Modified > 0:
			cols.Modified = 0
		case cols.Tags > 0:
			cols.Tags = 0
		case cols.Size > 0:
			cols.Size = 0
		default:
			cols.Name = avail
			return cols
		}
	}
}

// Layout records where the last frame put the listing.
type Layout struct {
	ListStart int // first listing row
	ListEnd   int // one past the last listing row
	Width     int
	Columns   Columns
}

// RowAt maps a screen row to a listing row, or -1.
func (l Layout) RowAt(y int) int {
	if y < l.ListStart || y >= l.ListEnd {
		return -1
	}
	return y - l.ListStart
}

func computeLayout(w, h int, state *statepkg.AppState) Layout {
	end := h - footerRows
	if end < listStartRow {
		end = listStartRow
	}
	p := settings.DefaultPerspective
	if state != nil && state.Perspective != "" {
		p = state.Perspective
	}
	return Layout{
		ListStart: listStartRow,
		ListEnd:   end,
		Width:     w,
		Columns:   ComputeColumns(w, p),
	}
}

// RowCells are the formatted cells of one entry row.
type RowCells struct {
	Icon     string
	Name     string
	Tags     string
	Size     string
	Modified string
}

// FormatRow formats f into cells already fitted to cols.
func FormatRow(f statepkg.FileEntry, cols Columns) RowCells {
	cells := RowCells{
		Icon: " " + entryIcon(f) + " ",
		Name: textutil.Fit(textutil.SanitizeName(f.Name), cols.Name),
	}
	if cols.Tags > 0 {
		cells.Tags = textutil.Fit(formatTags(f), cols.Tags)
	}
	if cols.Size > 0 {
		size := ""
		if f.IsFile {
			size = textutil.FormatSize(f.Size)
		}
		cells.Size = textutil.FitRight(size, cols.Size)
	}
	if cols.Modified > 0 {
		cells.Modified = textutil.FitRight(formatTime(f.Modified), cols.Modified)
	}
	return cells
}

// String joins the cells into a plain text line.
func (c RowCells) String() string {
	parts := []string{c.Icon + c.Name}
	for _, cell := range []string{c.Tags, c.Size, c.Modified} {
		if cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", gutterColumns)), " ")
}

func entryIcon(f statepkg.FileEntry) string {
	switch {
	case f.IsSymlink:
		return "@"
	case f.IsDir():
		return "/"
	default:
		return " "
	}
}

func formatTags(f statepkg.FileEntry) string {
	if len(f.Tags) == 0 {
		return ""
	}
	titles := make([]string, len(f.Tags))
	for i, t := range f.Tags {
		titles[i] = "#" + textutil.SanitizeName(t.Title)
	}
	return strings.Join(titles, " ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

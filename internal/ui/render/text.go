package render

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText draws text from startX, never past maxWidth columns, folding
// zero-width runes into the preceding cell. It returns the next free column.
func (r *Renderer) drawText(startX, y, maxWidth int, text string, style tcell.Style) int {
	return r.drawHighlighted(startX, y, maxWidth, text, nil, style, style)
}

// drawHighlighted is drawText with the rune ranges in spans drawn in hlStyle.
func (r *Renderer) drawHighlighted(startX, y, maxWidth int, text string, spans []highlightSpan, style, hlStyle tcell.Style) int {
	x := startX
	runes := []rune(text)
	spanIdx := 0

	for i := 0; i < len(runes); {
		mainc := runes[i]
		w := runewidth.RuneWidth(mainc)
		if w < 1 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}

		cellStyle := style
		for spanIdx < len(spans) && i >= spans[spanIdx].end {
			spanIdx++
		}
		if spanIdx < len(spans) && i >= spans[spanIdx].start {
			cellStyle = hlStyle
		}

		i++
		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, cellStyle)
		x += w
	}
	return x
}

func (r *Renderer) fillRow(fromX, toX, y int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (r *Renderer) fillRect(x0, y0, w, h int, style tcell.Style) {
	for y := y0; y < y0+h; y++ {
		r.fillRow(x0, x0+w, y, style)
	}
}

type highlightSpan struct {
	start int // rune offsets, end exclusive
	end   int
}

// matchSpans finds case-insensitive occurrences of query in text.
func matchSpans(text, query string) []highlightSpan {
	needle := []rune(query)
	if len(needle) == 0 {
		return nil
	}
	hay := []rune(text)
	for i := range needle {
		needle[i] = unicode.ToLower(needle[i])
	}

	var spans []highlightSpan
	for i := 0; i+len(needle) <= len(hay); {
		matched := true
		for j, nr := range needle {
			if unicode.ToLower(hay[i+j]) != nr {
				matched = false
				break
			}
		}
		if matched {
			spans = append(spans, highlightSpan{start: i, end: i + len(needle)})
			i += len(needle)
			continue
		}
		i++
	}
	return spans
}

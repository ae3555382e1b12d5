package textutil

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const Ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate cuts text to width columns, marking the cut with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, Ellipsis)
}

// TruncateLeft keeps the end of text, which is the useful part of a path.
func TruncateLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	ellipsisWidth := runewidth.StringWidth(Ellipsis)
	if width <= ellipsisWidth {
		return Ellipsis
	}

	runes := []rune(text)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width-ellipsisWidth {
			break
		}
		used += w
		start--
	}
	return Ellipsis + string(runes[start:])
}

// Fit truncates or pads text to exactly width columns.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(text, width), width)
}

// FitRight is Fit with the text aligned to the right edge.
func FitRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillLeft(Truncate(text, width), width)
}

// FormatSize renders a byte count the way ls -h does.
func FormatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%dB", size)
	}
	units := []string{"K", "M", "G", "T", "P"}
	value := float64(size)
	unit := ""
	for _, u := range units {
		value /= 1024
		unit = u
		if value < 1024 {
			break
		}
	}
	if value < 10 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + unit
	}
	return fmt.Sprintf("%.0f%s", value, unit)
}

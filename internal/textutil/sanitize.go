package textutil

import "strings"

// invisibleRuneLabels names bidi and zero-width runes that could disguise a
// file name when printed raw.
var invisibleRuneLabels = map[rune]string{
	0x00AD: "<SHY>",
	0x061C: "<ALM>",
	0x200B: "<ZWSP>",
	0x200C: "<ZWNJ>",
	0x200D: "<ZWJ>",
	0x200E: "<LRM>",
	0x200F: "<RLM>",
	0x202A: "<LRE>",
	0x202B: "<RLE>",
	0x202C: "<PDF>",
	0x202D: "<LRO>",
	0x202E: "<RLO>",
	0x2066: "<LRI>",
	0x2067: "<RLI>",
	0x2068: "<FSI>",
	0x2069: "<PDI>",
	0xFEFF: "<BOM>",
}

// SanitizeName makes a file name safe to print on a terminal: control
// characters become '?', whitespace controls become spaces and invisible
// formatting runes are spelled out.
func SanitizeName(text string) string {
	for _, r := range text {
		if needsSanitizing(r) {
			return sanitize(text)
		}
	}
	return text
}

func needsSanitizing(r rune) bool {
	if _, ok := invisibleRuneLabels[r]; ok {
		return true
	}
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := invisibleRuneLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

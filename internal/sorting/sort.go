package sorting

import (
	"sort"
	"strings"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Func orders entries by criterion and tri-state order, returning a new slice.
type Func func(entries []fsutil.Entry, c Criterion, order *bool) []fsutil.Entry

// Sorter holds the options of the sort utility.
type Sorter struct {
	FoldersFirst bool
	Language     language.Tag
}

// NewSorter returns a sorter that groups folders before files.
func NewSorter() *Sorter {
	return &Sorter{FoldersFirst: true, Language: language.Und}
}

// SortByCriteria sorts with the default sorter.
func SortByCriteria(entries []fsutil.Entry, c Criterion, order *bool) []fsutil.Entry {
	return NewSorter().Sort(entries, c, order)
}

// Func exposes the sorter as a Func.
func (s *Sorter) Func() Func {
	return s.Sort
}

// Sort returns a stably sorted copy of entries. The input is never modified.
func (s *Sorter) Sort(entries []fsutil.Entry, c Criterion, order *bool) []fsutil.Entry {
	out := make([]fsutil.Entry, len(entries))
	copy(out, entries)
	if len(out) < 2 {
		return out
	}

	asc := Ascending(order)
	if c == ByRelevance {
		if !asc {
			Reverse(out)
		}
		return out
	}

	// collate.Collator keeps internal buffers, so each sort gets its own.
	names := collate.New(s.Language, collate.IgnoreCase, collate.Numeric)
	compareNames := func(a, b fsutil.Entry) int {
		if cmp := names.CompareString(a.Name, b.Name); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.Name, b.Name)
	}

	primary := primaryCompare(c, compareNames)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if s.FoldersFirst && a.IsFile != b.IsFile {
			return !a.IsFile
		}
		cmp := primary(a, b)
		if !asc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		return compareNames(a, b) < 0
	})
	return out
}

func primaryCompare(c Criterion, compareNames func(a, b fsutil.Entry) int) func(a, b fsutil.Entry) int {
	switch c {
	case ByFileSize:
		return func(a, b fsutil.Entry) int { return compareInt64(a.Size, b.Size) }
	case ByDateModified:
		return func(a, b fsutil.Entry) int { return a.Modified.Compare(b.Modified) }
	case ByDateCreated:
		return func(a, b fsutil.Entry) int { return a.Created.Compare(b.Created) }
	case ByExtension:
		return func(a, b fsutil.Entry) int { return strings.Compare(a.Extension, b.Extension) }
	case ByFirstTag:
		return compareFirstTag
	default:
		return compareNames
	}
}

// compareFirstTag puts untagged entries after tagged ones.
func compareFirstTag(a, b fsutil.Entry) int {
	ta, tb := strings.ToLower(a.FirstTag()), strings.ToLower(b.FirstTag())
	switch {
	case ta == tb:
		return 0
	case ta == "":
		return 1
	case tb == "":
		return -1
	}
	return strings.Compare(ta, tb)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Reverse reverses entries in place.
func Reverse(entries []fsutil.Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

package state

import (
	"strings"
	"time"

	search "github.com/kk-code-lab/dirview/internal/search"
	"github.com/kk-code-lab/dirview/internal/sorting"
	"golang.org/x/text/cases"
)

// ResolveInput is the snapshot the displayed listing is derived from.
// MetaRevision changes whenever the directory meta does.
type ResolveInput struct {
	Entries             []FileEntry
	SortBy              sorting.Criterion
	OrderBy             *bool
	SearchFilter        string
	LastSearchTimestamp time.Time
	MetaRevision        uint64
}

// SearchMode reports whether search results or filter text supersede the
// plain sorted listing.
func (in ResolveInput) SearchMode() bool {
	return in.SearchFilter != "" || !in.LastSearchTimestamp.IsZero()
}

// Resolve computes the entries to display. Branches, in precedence order:
//
//  1. filter text set: filter the search results (keeping their order) when a
//     search has completed, else sort the raw entries and filter those;
//  2. search completed: relevance keeps (or reverses) the result order, any
//     other criterion sorts the results;
//  3. otherwise sort the raw entries.
//
// Inputs are never modified and the returned slice is always fresh.
func Resolve(in ResolveInput, results search.ResultProvider, sortFn sorting.Func) []FileEntry {
	if sortFn == nil {
		sortFn = sorting.SortByCriteria
	}
	searched := !in.LastSearchTimestamp.IsZero()

	if in.SearchFilter != "" {
		if searched {
			return filterByName(resultsOf(results), in.SearchFilter)
		}
		return filterByName(sortFn(in.Entries, in.SortBy, in.OrderBy), in.SearchFilter)
	}

	if searched {
		found := resultsOf(results)
		if in.SortBy == sorting.ByRelevance {
			out := make([]FileEntry, len(found))
			copy(out, found)
			if !sorting.Ascending(in.OrderBy) {
				sorting.Reverse(out)
			}
			return out
		}
		return sortFn(found, in.SortBy, in.OrderBy)
	}

	return sortFn(in.Entries, in.SortBy, in.OrderBy)
}

func resultsOf(results search.ResultProvider) []FileEntry {
	if results == nil {
		return nil
	}
	return results.Results()
}

// filterByName keeps entries whose name contains filter, ignoring case.
func filterByName(entries []FileEntry, filter string) []FileEntry {
	folder := cases.Fold()
	needle := folder.String(filter)

	out := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(folder.String(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Resolver memoizes Resolve. Results are assumed to change only together with
// LastSearchTimestamp, so the provider itself is not part of the cache key.
type Resolver struct {
	sortFn sorting.Func

	last  ResolveInput
	cache []FileEntry
	valid bool
}

// NewResolver creates a resolver using sortFn (nil means the default sorter).
func NewResolver(sortFn sorting.Func) *Resolver {
	return &Resolver{sortFn: sortFn}
}

// Resolve returns the derived listing, recomputing only when in differs from
// the previous call. Callers get their own copy.
func (r *Resolver) Resolve(in ResolveInput, results search.ResultProvider) []FileEntry {
	if !r.valid || !sameInput(r.last, in) {
		r.cache = Resolve(in, results, r.sortFn)
		r.last = in
		r.valid = true
	}
	out := make([]FileEntry, len(r.cache))
	copy(out, r.cache)
	return out
}

func sameInput(a, b ResolveInput) bool {
	return sameEntries(a.Entries, b.Entries) &&
		a.SortBy == b.SortBy &&
		sameOrder(a.OrderBy, b.OrderBy) &&
		a.SearchFilter == b.SearchFilter &&
		a.LastSearchTimestamp.Equal(b.LastSearchTimestamp) &&
		a.MetaRevision == b.MetaRevision
}

// sameEntries compares slice identity; listings are replaced, never edited.
func sameEntries(a, b []FileEntry) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}

func sameOrder(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

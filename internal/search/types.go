package search

import (
	"errors"
	"time"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
)

// ErrEmptyQuery is returned when a search is started without any query tokens.
var ErrEmptyQuery = errors.New("search: empty query")

// ResultProvider exposes the ordered results of the last completed search.
// Implementations must return a slice the caller may not modify.
type ResultProvider interface {
	Results() []fsutil.Entry
}

// StaticResults is a fixed, already ordered result set.
type StaticResults []fsutil.Entry

// Results returns the entries in their stored order.
func (r StaticResults) Results() []fsutil.Entry {
	return r
}

// Completion is delivered to the callback of an asynchronous search.
type Completion struct {
	Token       int
	Query       string
	Results     []fsutil.Entry
	CompletedAt time.Time
	Err         error
}

// Options tune a Searcher.
type Options struct {
	HideHidden bool
	MaxResults int
}

const defaultMaxResults = 10000

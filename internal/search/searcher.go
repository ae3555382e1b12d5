package search

import (
	"context"
	"sort"
	"sync"
	"time"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
	"github.com/kk-code-lab/dirview/internal/logging"
	"go.uber.org/zap"
)

// Searcher walks a directory tree and keeps the ranked results of the last
// completed search. It is the process-wide result provider for a root.
type Searcher struct {
	rootPath string
	opts     Options

	mu          sync.RWMutex
	query       string
	results     []fsutil.Entry
	completedAt time.Time

	cancelMu sync.Mutex
	cancel   context.CancelFunc
	token    int
}

// NewSearcher creates a searcher rooted at rootPath.
func NewSearcher(rootPath string, opts Options) *Searcher {
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	return &Searcher{rootPath: rootPath, opts: opts}
}

// RootPath returns the directory where the searcher was initialized.
func (s *Searcher) RootPath() string {
	return s.rootPath
}

// Options returns the options the searcher was created with.
func (s *Searcher) Options() Options {
	return s.opts
}

// Results returns the results of the last completed search, best match first.
func (s *Searcher) Results() []fsutil.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

// Query returns the query of the last completed search.
func (s *Searcher) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// CompletedAt is the zero time until a search has completed.
func (s *Searcher) CompletedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completedAt
}

// Reset cancels any running search and forgets stored results.
func (s *Searcher) Reset() {
	s.Cancel()
	s.mu.Lock()
	s.query = ""
	s.results = nil
	s.completedAt = time.Time{}
	s.mu.Unlock()
}

// Search runs synchronously and stores the results on success.
func (s *Searcher) Search(ctx context.Context, query string) ([]fsutil.Entry, error) {
	results, err := s.collect(ctx, query)
	if err != nil {
		return nil, err
	}
	s.store(query, results, time.Now())
	return results, nil
}

// Start runs the search on a goroutine, cancelling any search still in flight.
// The callback is skipped when the search was superseded or cancelled.
func (s *Searcher) Start(query string, callback func(Completion)) int {
	ctx, cancel := context.WithCancel(context.Background())
	token := s.setCancel(cancel)

	go func() {
		defer s.clearCancel(token)
		defer cancel()

		results, err := s.collect(ctx, query)
		if !s.isTokenCurrent(token) || ctx.Err() != nil {
			return
		}

		completedAt := time.Now()
		if err == nil {
			s.store(query, results, completedAt)
		}
		if callback != nil {
			callback(Completion{
				Token:       token,
				Query:       query,
				Results:     results,
				CompletedAt: completedAt,
				Err:         err,
			})
		}
	}()

	return token
}

// Cancel stops the in-flight asynchronous search, if any.
func (s *Searcher) Cancel() {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.token++
	}
}

func (s *Searcher) store(query string, results []fsutil.Entry, at time.Time) {
	s.mu.Lock()
	s.query = query
	s.results = results
	s.completedAt = at
	s.mu.Unlock()
}

func (s *Searcher) collect(ctx context.Context, query string) ([]fsutil.Entry, error) {
	tokens := prepareQueryTokens(query)
	if len(tokens) == 0 {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	var scored []scoredEntry
	scanned := 0
	err := s.walkBFS(ctx, func(entry fsutil.Entry, relPath string) {
		scanned++
		score, ok := matchEntry(tokens, relPath, entry)
		if !ok {
			return
		}
		scored = append(scored, scoredEntry{
			entry:        entry,
			score:        score,
			pathSegments: countPathSegments(relPath),
			pathLength:   len([]rune(relPath)),
			order:        len(scored),
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return compareScored(scored[i], scored[j]) < 0
	})
	if len(scored) > s.opts.MaxResults {
		scored = scored[:s.opts.MaxResults]
	}

	results := make([]fsutil.Entry, len(scored))
	for i, sc := range scored {
		results[i] = sc.entry
	}

	logging.Debug("search completed",
		zap.String("root", s.rootPath),
		zap.String("query", query),
		zap.Int("scanned", scanned),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

func (s *Searcher) setCancel(cancel context.CancelFunc) int {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.token++
	s.cancel = cancel
	return s.token
}

func (s *Searcher) clearCancel(token int) {
	s.cancelMu.Lock()
	if s.token == token {
		s.cancel = nil
	}
	s.cancelMu.Unlock()
}

func (s *Searcher) isTokenCurrent(token int) bool {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	return s.token == token
}

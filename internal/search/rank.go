package search

import (
	"math"
	"path/filepath"
	"strings"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
)

const (
	segmentRankExact = iota
	segmentRankExactBase
	segmentRankPrefix
	segmentRankSubstring
	segmentRankNone
)

const (
	resultScoreEpsilon = 1e-9
	tagHitBoost        = 1.5
	pathHitScore       = 1.0
)

type scoredEntry struct {
	entry        fsutil.Entry
	score        float64
	pathSegments int
	pathLength   int
	order        int
}

func prepareQueryTokens(query string) []string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return nil
	}
	tokens := fields[:0]
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// matchEntry requires every token to hit either the relative path or a tag.
func matchEntry(tokens []string, relPath string, entry fsutil.Entry) (float64, bool) {
	lowerPath := strings.ToLower(filepath.ToSlash(relPath))

	total := 0.0
	for _, token := range tokens {
		hit := false
		if strings.Contains(lowerPath, token) {
			hit = true
			total += pathHitScore + computeSegmentBoost(token, relPath)
		}
		for _, tag := range entry.Tags {
			if strings.EqualFold(tag.Title, token) {
				hit = true
				total += tagHitBoost
				break
			}
		}
		if !hit {
			return 0, false
		}
	}
	return total / float64(len(tokens)), true
}

// computeSegmentBoost rewards tokens matching a whole path segment, its base
// name or prefix, with extra weight for the final segment.
func computeSegmentBoost(token, relPath string) float64 {
	if token == "" || relPath == "" {
		return 0
	}

	segments := strings.FieldsFunc(filepath.ToSlash(relPath), func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return 0
	}

	bestRank := segmentRankNone
	bestDepth := len(segments) + 1
	for idx, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}

		lower := strings.ToLower(seg)
		baseLower := lower
		if dot := strings.LastIndex(lower, "."); dot > 0 {
			baseLower = lower[:dot]
		}

		var rank int
		switch {
		case lower == token:
			rank = segmentRankExact
		case baseLower == token:
			rank = segmentRankExactBase
		case strings.HasPrefix(lower, token):
			rank = segmentRankPrefix
		case strings.Contains(lower, token):
			rank = segmentRankSubstring
		default:
			continue
		}

		// Prefer better ranks, then the deepest segment (the entry itself).
		if rank < bestRank || (rank == bestRank && idx > bestDepth) {
			bestRank = rank
			bestDepth = idx
		}
	}

	if bestRank == segmentRankNone {
		return 0
	}

	boost := segmentRankBaseBoost(bestRank)
	if bestDepth == len(segments)-1 {
		boost += 0.25
	}
	return boost
}

func segmentRankBaseBoost(rank int) float64 {
	switch rank {
	case segmentRankExact:
		return 2.3
	case segmentRankExactBase:
		return 1.9
	case segmentRankPrefix:
		return 1.1
	case segmentRankSubstring:
		return 0.35
	default:
		return 0
	}
}

func compareScored(a, b scoredEntry) int {
	if diff := compareScore(a.score, b.score); diff != 0 {
		return diff
	}
	if diff := compareInt(a.pathSegments, b.pathSegments); diff != 0 {
		return diff
	}
	if diff := compareInt(a.pathLength, b.pathLength); diff != 0 {
		return diff
	}
	return compareInt(a.order, b.order)
}

func compareScore(a, b float64) int {
	if math.Abs(a-b) <= resultScoreEpsilon {
		return 0
	}
	if a > b {
		return -1
	}
	return 1
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func countPathSegments(path string) int {
	if path == "" || path == "." {
		return 1
	}
	normalized := strings.Trim(filepath.ToSlash(path), "/")
	if normalized == "" {
		return 1
	}
	return strings.Count(normalized, "/") + 1
}

package sorting

import "strings"

// Criterion names the field or strategy entries are ordered by.
type Criterion string

const (
	ByName         Criterion = "byName"
	ByFileSize     Criterion = "byFileSize"
	ByDateModified Criterion = "byDateModified"
	ByDateCreated  Criterion = "byDateCreated"
	ByExtension    Criterion = "byExtension"
	ByFirstTag     Criterion = "byFirstTag"
	ByRelevance    Criterion = "byRelevance"
)

// DefaultCriterion is used when no stored setting names a known criterion.
const DefaultCriterion = ByName

// Criteria lists every criterion in the order the UI cycles through them.
var Criteria = []Criterion{
	ByName,
	ByFileSize,
	ByDateModified,
	ByDateCreated,
	ByExtension,
	ByFirstTag,
	ByRelevance,
}

var labels = map[Criterion]string{
	ByName:         "name",
	ByFileSize:     "size",
	ByDateModified: "modified",
	ByDateCreated:  "created",
	ByExtension:    "type",
	ByFirstTag:     "tag",
	ByRelevance:    "relevance",
}

// ParseCriterion maps a stored key (or its short label) to a Criterion.
func ParseCriterion(s string) (Criterion, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Criteria {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, labels[c]) {
			return c, true
		}
	}
	return DefaultCriterion, false
}

// Valid reports whether c is a known criterion.
func (c Criterion) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Label is the short human-readable name shown in the header.
func (c Criterion) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return labels[DefaultCriterion]
}

// Next returns the criterion following c in the cycle.
func (c Criterion) Next() Criterion {
	for i, cand := range Criteria {
		if cand == c {
			return Criteria[(i+1)%len(Criteria)]
		}
	}
	return DefaultCriterion
}

// Ascending resolves the tri-state order: nil means the default, ascending.
func Ascending(order *bool) bool {
	return order == nil || *order
}

// Order returns a pointer form of asc for use as a tri-state order value.
func Order(asc bool) *bool {
	return &asc
}

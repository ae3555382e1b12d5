package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrNoSettings reports that a store holds nothing for the requested key.
var ErrNoSettings = errors.New("settings: not found")

// Perspective is a named view mode over a directory's contents.
type Perspective string

const (
	PerspectiveGrid   Perspective = "grid"
	PerspectiveList   Perspective = "list"
	PerspectiveKanban Perspective = "kanban"
)

// DefaultPerspective is used when nothing else is configured.
const DefaultPerspective = PerspectiveGrid

// Perspectives lists the known perspectives in cycle order.
var Perspectives = []Perspective{PerspectiveGrid, PerspectiveList, PerspectiveKanban}

// ParsePerspective maps a name to a Perspective.
func ParsePerspective(s string) (Perspective, bool) {
	for _, p := range Perspectives {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return DefaultPerspective, false
}

// Key is the settings key the perspective persists under, e.g. "tsPerspectiveGrid".
func (p Perspective) Key() string {
	name := string(p)
	if name == "" {
		name = string(DefaultPerspective)
	}
	return "tsPerspective" + strings.ToUpper(name[:1]) + name[1:]
}

// Next returns the perspective following p in the cycle.
func (p Perspective) Next() Perspective {
	for i, cand := range Perspectives {
		if cand == p {
			return Perspectives[(i+1)%len(Perspectives)]
		}
	}
	return DefaultPerspective
}

// PerspectiveSettings are the view settings stored per perspective.
// Nil or empty fields mean "not set" and fall through to the next source.
type PerspectiveSettings struct {
	SortBy          string `mapstructure:"sortBy" json:"sortBy,omitempty"`
	OrderBy         *bool  `mapstructure:"orderBy" json:"orderBy,omitempty"`
	ShowDirectories *bool  `mapstructure:"showDirectories" json:"showDirectories,omitempty"`
}

// Merge returns s with unset fields filled from fallback.
func (s PerspectiveSettings) Merge(fallback PerspectiveSettings) PerspectiveSettings {
	out := s
	if out.SortBy == "" {
		out.SortBy = fallback.SortBy
	}
	if out.OrderBy == nil {
		out.OrderBy = fallback.OrderBy
	}
	if out.ShowDirectories == nil {
		out.ShowDirectories = fallback.ShowDirectories
	}
	return out
}

// DirectoriesVisible resolves ShowDirectories, defaulting to true.
func (s PerspectiveSettings) DirectoriesVisible() bool {
	return s.ShowDirectories == nil || *s.ShowDirectories
}

func (s PerspectiveSettings) toMap() map[string]any {
	out := map[string]any{}
	if s.SortBy != "" {
		out["sortBy"] = s.SortBy
	}
	if s.OrderBy != nil {
		out["orderBy"] = *s.OrderBy
	}
	if s.ShowDirectories != nil {
		out["showDirectories"] = *s.ShowDirectories
	}
	return out
}

// Decode converts a loosely typed settings blob into PerspectiveSettings.
// Strings such as "false" are accepted for boolean fields.
func Decode(raw any) (PerspectiveSettings, error) {
	var out PerspectiveSettings
	if raw == nil {
		return out, ErrNoSettings
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return PerspectiveSettings{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return PerspectiveSettings{}, fmt.Errorf("invalid perspective settings: %w", err)
	}
	return out, nil
}

// Bool is a convenience for building tri-state settings.
func Bool(v bool) *bool {
	return &v
}

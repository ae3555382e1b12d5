package config

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/dirview/internal/settings"
	"github.com/kk-code-lab/dirview/internal/sorting"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if _, ok := settings.ParsePerspective(c.View.Perspective); !ok {
		errs = append(errs, fmt.Sprintf("view.perspective %q is not one of grid, list, kanban", c.View.Perspective))
	}
	if _, ok := sorting.ParseCriterion(c.View.SortBy); !ok {
		errs = append(errs, fmt.Sprintf("view.sort_by %q is not a known sort criterion", c.View.SortBy))
	}

	if c.Search.MaxResults < 1 {
		errs = append(errs, "search.max_results must be >= 1")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be json or console", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultViewSettings converts the view section into fallback perspective settings.
func (c *Config) DefaultViewSettings() settings.PerspectiveSettings {
	criterion, _ := sorting.ParseCriterion(c.View.SortBy)
	return settings.PerspectiveSettings{
		SortBy:          string(criterion),
		OrderBy:         settings.Bool(c.View.Ascending),
		ShowDirectories: settings.Bool(true),
	}
}

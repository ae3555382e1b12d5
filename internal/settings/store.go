package settings

import (
	"errors"
	"time"

	"github.com/kk-code-lab/dirview/internal/logging"
	"go.uber.org/zap"
)

// Store resolves and persists perspective settings for a directory.
type Store interface {
	// Load never fails: unreadable or malformed sources fall through to defaults.
	Load(dir string, meta map[string]any, p Perspective) PerspectiveSettings
	// Save persists ps and returns the directory meta as it now stands.
	Save(dir string, meta map[string]any, p Perspective, ps PerspectiveSettings) (map[string]any, error)
}

// Chain reads per-folder meta first (when Enhanced), then the local store,
// then Defaults. Writes go to the folder when Enhanced, else to Local.
type Chain struct {
	Local    *LocalStore
	Enhanced bool
	Defaults PerspectiveSettings

	now func() time.Time
}

// NewChain builds the default settings store.
func NewChain(local *LocalStore, enhanced bool, defaults PerspectiveSettings) *Chain {
	return &Chain{
		Local:    local,
		Enhanced: enhanced,
		Defaults: defaults,
		now:      time.Now,
	}
}

func (c *Chain) Load(dir string, meta map[string]any, p Perspective) PerspectiveSettings {
	// One source seeds the view; only the defaults fill its gaps.
	if c.Enhanced {
		ps, err := PerspectiveFromMeta(meta, p)
		switch {
		case err == nil:
			return ps.Merge(c.Defaults)
		case !errors.Is(err, ErrNoSettings):
			logging.Warn("ignoring folder perspective settings",
				zap.String("dir", dir), zap.String("perspective", string(p)), zap.Error(err))
		}
	}

	if c.Local != nil {
		ps, err := c.Local.Get(p.Key())
		switch {
		case err == nil:
			return ps.Merge(c.Defaults)
		case !errors.Is(err, ErrNoSettings):
			logging.Warn("ignoring local perspective settings",
				zap.String("key", p.Key()), zap.Error(err))
		}
	}

	return c.Defaults
}

func (c *Chain) Save(dir string, meta map[string]any, p Perspective, ps PerspectiveSettings) (map[string]any, error) {
	if c.Enhanced && dir != "" {
		updated := WithPerspective(meta, p, ps, c.clock())
		err := WriteFolderMeta(dir, updated)
		if err == nil {
			return updated, nil
		}
		logging.Warn("folder settings not writable, using local store",
			zap.String("dir", dir), zap.Error(err))
	}

	if c.Local == nil {
		return meta, nil
	}
	if err := c.Local.Set(p.Key(), ps); err != nil {
		return meta, err
	}
	return meta, nil
}

func (c *Chain) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

package state

import (
	"github.com/kk-code-lab/dirview/internal/logging"
	"github.com/kk-code-lab/dirview/internal/settings"
	"github.com/kk-code-lab/dirview/internal/sorting"
	"go.uber.org/zap"
)

// defaultViewSettings is the hard-coded last resort when no store is wired.
func (s *AppState) defaultViewSettings() settings.PerspectiveSettings {
	return s.DefaultSettings.Merge(settings.PerspectiveSettings{
		SortBy:          string(sorting.DefaultCriterion),
		OrderBy:         sorting.Order(true),
		ShowDirectories: settings.Bool(true),
	})
}

// loadViewSettings seeds sort and order for the current directory and
// perspective: folder meta, then the local store, then defaults.
func (s *AppState) loadViewSettings() {
	ps := s.defaultViewSettings()
	if s.Settings != nil {
		ps = s.Settings.Load(s.CurrentPath, s.DirectoryMeta, s.Perspective).Merge(ps)
	}
	s.applyViewSettings(ps)
}

func (s *AppState) applyViewSettings(ps settings.PerspectiveSettings) {
	criterion, ok := sorting.ParseCriterion(ps.SortBy)
	if !ok && ps.SortBy != "" {
		logging.Warn("unknown sort criterion, using default",
			zap.String("sortBy", ps.SortBy), zap.String("dir", s.CurrentPath))
	}
	s.SortBy = criterion
	s.OrderBy = ps.OrderBy
	s.ShowDirectories = ps.DirectoriesVisible()
	s.invalidateDisplayFilesCache()
}

func (s *AppState) currentViewSettings() settings.PerspectiveSettings {
	return settings.PerspectiveSettings{
		SortBy:          string(s.SortBy),
		OrderBy:         s.OrderBy,
		ShowDirectories: settings.Bool(s.ShowDirectories),
	}
}

// persistViewSettings writes the active perspective's settings through the store.
func (s *AppState) persistViewSettings() error {
	if s.Settings == nil {
		return nil
	}
	meta, err := s.Settings.Save(s.CurrentPath, s.DirectoryMeta, s.Perspective, s.currentViewSettings())
	if err != nil {
		return err
	}
	s.SetDirectoryMeta(meta)
	return nil
}

// setSortBy changes the criterion, re-derives the listing and persists it.
func (s *AppState) setSortBy(c sorting.Criterion) error {
	if !c.Valid() {
		c = sorting.DefaultCriterion
	}
	s.SortBy = c
	s.viewChanged()
	return s.persistViewSettings()
}

// setOrderBy changes the order (nil restores the default), re-derives the
// listing and persists it.
func (s *AppState) setOrderBy(order *bool) error {
	s.OrderBy = order
	s.viewChanged()
	return s.persistViewSettings()
}

func (s *AppState) setShowDirectories(show bool) error {
	s.ShowDirectories = show
	s.viewChanged()
	return s.persistViewSettings()
}

// setPerspective switches views; each perspective has its own stored settings.
func (s *AppState) setPerspective(p settings.Perspective) {
	if p == "" {
		p = settings.DefaultPerspective
	}
	s.Perspective = p
	prev := s.selectedPath()
	s.loadViewSettings()
	s.selectPath(prev)
}

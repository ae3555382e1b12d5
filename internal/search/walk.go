package search

import (
	"context"
	"os"
	"path/filepath"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
)

// shouldHideFromListingFn mirrors fs.ShouldHideFromListing for test overrides.
var shouldHideFromListingFn = fsutil.ShouldHideFromListing

// walkBFS visits every entry under the root breadth-first, so shallow matches
// get a lower walk order than deep ones.
func (s *Searcher) walkBFS(ctx context.Context, handle func(entry fsutil.Entry, relPath string)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	type dirNode struct {
		absPath string
		relPath string
	}

	queue := []dirNode{{absPath: s.rootPath, relPath: "."}}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		node := queue[0]
		queue = queue[1:]

		dirEntries, err := os.ReadDir(node.absPath)
		if err != nil {
			continue
		}

		for _, d := range dirEntries {
			if err := ctx.Err(); err != nil {
				return err
			}

			name := d.Name()
			fullPath := filepath.Join(node.absPath, name)
			if s.shouldSkip(fullPath, d) {
				continue
			}

			info, err := d.Info()
			if err != nil {
				continue
			}

			rel := joinRelPath(node.relPath, name)
			entry := fsutil.EntryFromInfo(fullPath, info)
			handle(entry, rel)

			if d.IsDir() {
				queue = append(queue, dirNode{absPath: fullPath, relPath: rel})
			}
		}
	}

	return nil
}

func (s *Searcher) shouldSkip(absPath string, d os.DirEntry) bool {
	name := d.Name()
	if d.IsDir() && (name == ".git" || name == fsutil.MetaDirName) {
		return true
	}
	if shouldHideFromListingFn(absPath, name) {
		return true
	}
	return s.opts.HideHidden && fsutil.IsHidden(absPath, name)
}

func joinRelPath(parent, child string) string {
	if parent == "." || parent == "" {
		if child == "" {
			return "."
		}
		return child
	}
	return filepath.Join(parent, child)
}

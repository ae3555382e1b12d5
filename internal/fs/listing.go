package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MetaDirName is the per-folder directory holding sidecar settings.
const MetaDirName = ".ts"

// ReadDirectory lists dirPath into entries. Unreadable children are skipped;
// only a failure to read dirPath itself is returned.
func ReadDirectory(dirPath string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		rawName := e.Name()
		if rawName == MetaDirName {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		fullPath := filepath.Join(dirPath, rawName)
		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		entries = append(entries, EntryFromInfo(fullPath, info))
	}
	return entries, nil
}

// EntryFromInfo builds an Entry for fullPath. Symlinks take the directory
// flag of their target when it can be resolved.
func EntryFromInfo(fullPath string, info os.FileInfo) Entry {
	isDir := info.IsDir()
	isSymlink := info.Mode()&os.ModeSymlink != 0
	if isSymlink {
		if targetInfo, err := os.Stat(fullPath); err == nil {
			isDir = targetInfo.IsDir()
		}
	}

	name := norm.NFC.String(info.Name())
	entry := Entry{
		Name:      name,
		Path:      fullPath,
		IsFile:    !isDir,
		IsSymlink: isSymlink,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Created:   creationTime(info),
		Mode:      info.Mode(),
	}
	if entry.IsFile {
		entry.Extension = ExtensionOf(name)
		entry.Tags = ParseTags(name)
	}
	return entry
}

// ParseTags extracts tags encoded in a file name as "title[tag1 tag2].ext".
// Only the last bracket group before the extension counts.
func ParseTags(name string) []Tag {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if !strings.HasSuffix(base, "]") {
		return nil
	}
	open := strings.LastIndex(base, "[")
	if open < 0 {
		return nil
	}

	fields := strings.Fields(base[open+1 : len(base)-1])
	if len(fields) == 0 {
		return nil
	}

	tags := make([]Tag, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tags = append(tags, Tag{Title: f})
	}
	return tags
}

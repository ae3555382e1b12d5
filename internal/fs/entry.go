package fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tag is a label attached to an entry through its file name.
type Tag struct {
	Title string
}

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	Path      string
	IsFile    bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Created   time.Time
	Extension string
	Tags      []Tag
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Path, e.Name)
}

// IsDir reports whether the entry is a directory (or a symlink to one).
func (e Entry) IsDir() bool {
	return !e.IsFile
}

// FirstTag returns the title of the first tag, or "" when the entry is untagged.
func (e Entry) FirstTag() string {
	if len(e.Tags) == 0 {
		return ""
	}
	return e.Tags[0].Title
}

// ExtensionOf returns the lower-cased extension of name without the leading dot.
// Directories and dot-files without a further dot have no extension.
func ExtensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

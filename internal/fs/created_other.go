//go:build !windows

package fs

import (
	"os"
	"time"
)

// creationTime falls back to the modification time where the platform stat
// does not expose a portable birth time.
func creationTime(info os.FileInfo) time.Time {
	return info.ModTime()
}

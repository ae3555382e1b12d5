//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"
)

func creationTime(info os.FileInfo) time.Time {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok && data != nil {
		return time.Unix(0, data.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}

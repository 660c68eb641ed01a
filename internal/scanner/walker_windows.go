//go:build windows

package scanner

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/windows"
)

// hasHiddenAttr returns true for entries with FILE_ATTRIBUTE_HIDDEN set
func hasHiddenAttr(d fs.DirEntry) bool {
	info, err := d.Info()
	if err != nil {
		return false
	}
	// os.FileInfo.Sys is always the syscall type on Windows
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}
	return attrs.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

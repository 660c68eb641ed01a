//go:build !windows

package scanner

import "io/fs"

// hasHiddenAttr reports platform hidden flags. Unix relies on the dot prefix alone.
func hasHiddenAttr(d fs.DirEntry) bool {
	return false
}

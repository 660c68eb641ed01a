//go:build !darwin && !windows

package ui

import (
	"os/exec"
	"path/filepath"
)

// openInFileManager opens the containing folder; xdg-open has no way to select the item
func openInFileManager(path string) error {
	_, err := startDetached(exec.Command("xdg-open", filepath.Dir(path)))
	return err
}

// openDefault opens the file with xdg-open
func openDefault(path string) error {
	_, err := startDetached(exec.Command("xdg-open", path))
	return err
}

//go:build darwin

package ui

import "os/exec"

// openInFileManager reveals the given path in Finder (opens parent directory with item selected)
func openInFileManager(path string) error {
	_, err := startDetached(exec.Command("open", "-R", path))
	return err
}

// openDefault opens the file with its default application
func openDefault(path string) error {
	_, err := startDetached(exec.Command("open", path))
	return err
}

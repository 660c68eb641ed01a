//go:build windows

package ui

import "os/exec"

// openInFileManager reveals the given path in Windows Explorer (opens parent directory with item selected)
func openInFileManager(path string) error {
	_, err := startDetached(exec.Command("explorer", "/select,"+path))
	return err
}

// openDefault opens the file with its default application
func openDefault(path string) error {
	_, err := startDetached(exec.Command("cmd", "/c", "start", "", path))
	return err
}

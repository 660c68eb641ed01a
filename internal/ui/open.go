package ui

import (
	"os/exec"

	"github.com/lumipallolabs/diskseek/internal/logging"
)

// startDetached starts cmd and reaps it in the background. The returned
// channel yields the exit result once.
func startDetached(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		if err != nil {
			logging.Debug.Printf("[TUI] %s exited: %v", cmd.Path, err)
		}
		done <- err
	}()
	return done, nil
}

package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/diskseek/internal/cancel"
	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/sink"
)

// errStopped ends a walk early; Search maps it to nil
var errStopped = errors.New("search stopped")

// Walker implements parallel filesystem searching
type Walker struct {
	workers int

	visited atomic.Int64
	matched atomic.Int64
	stopped atomic.Bool
	current atomic.Value // string
}

// NewWalker creates a new parallel filesystem walker
func NewWalker(workers int) *Walker {
	if workers < 1 {
		workers = 8
	}
	return &Walker{workers: workers}
}

// Progress returns a snapshot of the counters
func (w *Walker) Progress() Progress {
	p := Progress{
		Visited: w.visited.Load(),
		Matched: w.matched.Load(),
		Stopped: w.stopped.Load(),
	}
	if cur, ok := w.current.Load().(string); ok {
		p.CurrentPath = cur
	}
	return p
}

// walkState is shared by the parallel callbacks of one search
type walkState struct {
	mu      sync.Mutex // serializes the stop check with publication
	stopped bool
}

// Search walks req.Root using fastwalk, following symlinks
func (w *Walker) Search(ctx context.Context, req model.SearchRequest, token *cancel.Token, out sink.Sink) error {
	root := req.Root
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("stat root: %w", err)
	}

	w.visited.Store(0)
	w.matched.Store(0)
	w.stopped.Store(false)
	w.current.Store(root)

	if token == nil {
		token = cancel.NewToken()
	}
	if out == nil {
		out = sink.Discard
	}

	st := &walkState{}

	// Follow symlinks; fastwalk skips links that lead back into the current path
	conf := &fastwalk.Config{
		Follow:     true,
		NumWorkers: w.workers,
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if w.shouldStop(ctx, token, st) {
			return errStopped
		}

		if err != nil {
			return nil // Skip entries with errors
		}

		// Skip the root itself
		if path == root {
			return nil
		}

		w.visited.Add(1)

		isDir := entryIsDir(path, d)

		if !req.IncludeHidden && (isHidden(root, path) || hasHiddenAttr(d)) {
			// Prune hidden directories, symlinked ones included
			if isDir {
				return fastwalk.SkipDir
			}
			return nil
		}

		if !req.Matches(d.Name()) {
			return nil
		}

		if isDir {
			w.current.Store(path)
		}

		st.mu.Lock()
		defer st.mu.Unlock()
		// Re-check under the lock: a stop requested by an earlier publish must win
		if st.stopped || token.ObserveAndClear() {
			st.stopped = true
			return errStopped
		}
		out.Publish(sink.EventAdd, model.NewEntry(path, isDir))
		w.matched.Add(1)

		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, errStopped) {
		logging.Scanner.Printf("walk of %s ended with error: %v", root, walkErr)
		return walkErr
	}

	w.stopped.Store(errors.Is(walkErr, errStopped))
	logging.Scanner.Printf("walk of %s done: visited=%d matched=%d stopped=%v",
		root, w.visited.Load(), w.matched.Load(), w.stopped.Load())
	return nil
}

// shouldStop observes the token once per visited entry
func (w *Walker) shouldStop(ctx context.Context, token *cancel.Token, st *walkState) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.stopped {
		return true
	}
	if token.ObserveAndClear() {
		st.stopped = true
		return true
	}
	select {
	case <-ctx.Done():
		st.stopped = true
		return true
	default:
	}
	return false
}

// entryIsDir resolves symlinks so a link to a directory reports as a folder
func entryIsDir(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir()
	}
	info, err := os.Stat(path)
	if err != nil {
		return false // dangling link
	}
	return info.IsDir()
}

// isHidden reports whether any segment of path below root starts with a dot
func isHidden(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return strings.HasPrefix(filepath.Base(path), ".")
	}
	for _, seg := range strings.Split(rel, string(filepath.Separator)) {
		if seg != "." && seg != ".." && strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// Ensure Walker implements Searcher
var _ Searcher = (*Walker)(nil)

package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/diskseek/internal/cancel"
	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/scanner"
	"github.com/lumipallolabs/diskseek/internal/sink"
	"github.com/lumipallolabs/diskseek/internal/stats"
	"github.com/lumipallolabs/diskseek/internal/volumes"
)

// Options configures a Controller
type Options struct {
	Workers         int
	MonitorInterval time.Duration
	Enumerator      volumes.Enumerator // defaults to the running system
	Stats           *stats.Manager     // optional; nothing is persisted without it
	Root            string             // initial search root; falls back to the last one used
}

// Controller manages the core application logic without UI dependencies
type Controller struct {
	mu sync.RWMutex

	// State
	volumes        model.Snapshot
	selectedVolume int
	history        *History
	search         SearchState
	walker         *scanner.Walker
	last           stats.LastSearch

	// Internal services
	workers      int
	interval     time.Duration
	enum         volumes.Enumerator
	registry     *cancel.Registry
	statsManager *stats.Manager
}

// NewController creates a new application controller
func NewController(opts Options) *Controller {
	if opts.Enumerator == nil {
		opts.Enumerator = volumes.NewSystem()
	}

	root := opts.Root
	var last stats.LastSearch
	if opts.Stats != nil {
		if root == "" {
			root = opts.Stats.LastDirectory()
		}
		last = opts.Stats.LastSearch()
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}

	return &Controller{
		selectedVolume: -1,
		history:        NewHistory(root),
		last:           last,
		workers:        opts.Workers,
		interval:       opts.MonitorInterval,
		enum:           opts.Enumerator,
		registry:       cancel.NewRegistry(),
		statsManager:   opts.Stats,
	}
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return AppState{
		Volumes:        c.volumes,
		SelectedVolume: c.selectedVolume,
		Root:           c.history.Present(),
		Search:         c.searchStateLocked(),
		LastSearch:     c.last,
		CanGoBack:      c.history.CanGoBack(),
		CanGoForward:   c.history.CanGoForward(),
	}
}

// Root returns the current search root
func (c *Controller) Root() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.Present()
}

// SearchState returns the state of the latest search with live counters
func (c *Controller) SearchState() SearchState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchStateLocked()
}

func (c *Controller) searchStateLocked() SearchState {
	s := c.search
	if s.IsSearching() && c.walker != nil {
		p := c.walker.Progress()
		s.Visited = p.Visited
		s.Matched = p.Matched
		s.Current = p.CurrentPath
	}
	return s
}

// LastSearch returns launch and completion times of the last finished search
func (c *Controller) LastSearch() stats.LastSearch {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// Volumes returns the last known volume snapshot
func (c *Controller) Volumes() model.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.volumes
}

// ListVolumes enumerates volumes now and remembers the result
func (c *Controller) ListVolumes(ctx context.Context) (model.Snapshot, error) {
	snap, err := c.enum.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}

	c.mu.Lock()
	c.setVolumesLocked(snap)
	c.mu.Unlock()
	return snap, nil
}

// setVolumesLocked replaces the snapshot and keeps the selection on the same mountpoint
func (c *Controller) setVolumesLocked(snap model.Snapshot) {
	selected := ""
	if c.selectedVolume >= 0 && c.selectedVolume < len(c.volumes) {
		selected = c.volumes[c.selectedVolume].Mountpoint
	}

	c.volumes = snap
	c.selectedVolume = -1
	for i, v := range snap {
		if v.Mountpoint == selected {
			c.selectedVolume = i
			break
		}
	}
}

// SelectVolume makes the volume at idx the search root
func (c *Controller) SelectVolume(idx int) (model.Volume, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx < 0 || idx >= len(c.volumes) {
		return model.Volume{}, fmt.Errorf("no volume at index %d", idx)
	}

	v := c.volumes[idx]
	c.selectedVolume = idx
	c.history.Visit(v.Mountpoint)
	c.rememberRootLocked()
	return v, nil
}

// SetRoot moves the search root to an existing directory
func (c *Controller) SetRoot(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", model.ErrRootNotDir, abs)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.history.Visit(abs)
	c.rememberRootLocked()
	return nil
}

// Back returns to the previous search root
func (c *Controller) Back() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	root, ok := c.history.Back()
	if ok {
		c.rememberRootLocked()
	}
	return root, ok
}

// Forward re-visits a root left with Back
func (c *Controller) Forward() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	root, ok := c.history.Forward()
	if ok {
		c.rememberRootLocked()
	}
	return root, ok
}

func (c *Controller) rememberRootLocked() {
	if c.statsManager != nil {
		c.statsManager.SetLastDirectory(c.history.Present())
	}
}

// StartSearch launches a search in the background. The returned ID can be
// passed to StopSearch. The event channel yields SearchStartedEvent, then
// EntryFoundEvents, then one SearchCompletedEvent, and is closed afterwards.
// Consumers must drain it or cancel ctx.
func (c *Controller) StartSearch(ctx context.Context, req model.SearchRequest) (string, <-chan Event) {
	token := c.registry.Start()
	id := token.ID()
	walker := scanner.NewWalker(c.workers)

	c.mu.Lock()
	c.search = SearchState{
		ID:        id,
		Phase:     PhaseSearching,
		Root:      req.Root,
		Pattern:   req.Pattern,
		Mode:      req.Mode,
		StartTime: time.Now(),
	}
	c.walker = walker
	c.mu.Unlock()

	if c.statsManager != nil {
		c.statsManager.SetSearchOptions(req.Mode.String(), req.IncludeHidden, req.MatchExtension)
	}

	// Create event channel for this search
	eventCh := make(chan Event, 100)

	go c.runSearch(ctx, req, token, walker, eventCh)

	return id, eventCh
}

// runSearch executes the search in a goroutine
func (c *Controller) runSearch(ctx context.Context, req model.SearchRequest, token *cancel.Token, walker *scanner.Walker, eventCh chan Event) {
	defer close(eventCh)
	defer c.registry.Finish(token)

	id := token.ID()
	launched := time.Now()
	logging.Debug.Printf("[Controller] Starting search %s of %s for %q (%s)", id, req.Root, req.Pattern, req.Mode)

	forward(ctx, eventCh, SearchStartedEvent{
		ID:      id,
		Root:    req.Root,
		Pattern: req.Pattern,
		Mode:    req.Mode,
	})

	out := sink.Func(func(event string, payload any) {
		if entry, ok := payload.(model.DiscoveredEntry); ok {
			forward(ctx, eventCh, EntryFoundEvent{ID: id, Entry: entry})
		}
	})

	err := walker.Search(ctx, req, token, out)

	found := time.Now()
	p := walker.Progress()
	last := stats.LastSearch{
		Launched: launched,
		Found:    found,
		Matched:  p.Matched,
		Stopped:  p.Stopped,
	}

	phase := PhaseComplete
	switch {
	case err != nil:
		phase = PhaseFailed
	case p.Stopped:
		phase = PhaseStopped
	}

	c.mu.Lock()
	// A newer search may have replaced the tracked one
	if c.search.ID == id {
		c.search.Phase = phase
		c.search.Visited = p.Visited
		c.search.Matched = p.Matched
		c.search.Err = err
	}
	if err == nil {
		c.last = last
	}
	c.mu.Unlock()

	if err == nil && c.statsManager != nil {
		c.statsManager.RecordSearch(last)
	}

	forward(ctx, eventCh, SearchCompletedEvent{
		ID:      id,
		Visited: p.Visited,
		Matched: p.Matched,
		Elapsed: found.Sub(launched),
		Stopped: p.Stopped,
		Err:     err,
	})
	if err != nil {
		forward(ctx, eventCh, ErrorEvent{Err: err})
	}

	logging.Debug.Printf("[Controller] Search %s %s: visited=%d matched=%d",
		id, phase, p.Visited, p.Matched)
}

// StopSearch requests cancellation of one search. Unknown or finished IDs are a no-op.
func (c *Controller) StopSearch(id string) bool {
	return c.registry.Stop(id)
}

// StopAll requests cancellation of every running search
func (c *Controller) StopAll() int {
	return c.registry.StopAll()
}

// ActiveSearches returns how many searches are running
func (c *Controller) ActiveSearches() int {
	return c.registry.Active()
}

// WatchVolumes runs the volume monitor until ctx is done. The first event
// carries every attached volume; later ones only follow mountpoint changes.
func (c *Controller) WatchVolumes(ctx context.Context) <-chan Event {
	eventCh := make(chan Event, 16)

	out := sink.Func(func(event string, payload any) {
		change, ok := payload.(model.VolumesChanged)
		if !ok {
			return
		}
		c.mu.Lock()
		c.setVolumesLocked(change.Current)
		c.mu.Unlock()
		forward(ctx, eventCh, VolumesChangedEvent{Change: change})
	})

	monitor := volumes.NewMonitor(c.enum, c.interval, out)
	go func() {
		defer close(eventCh)
		monitor.Run(ctx)
	}()

	return eventCh
}

// Close stops running searches and flushes stats
func (c *Controller) Close() error {
	if n := c.registry.StopAll(); n > 0 {
		logging.Debug.Printf("[Controller] Stopping %d searches", n)
	}
	if c.statsManager != nil {
		return c.statsManager.Close()
	}
	return nil
}

// forward delivers an event unless the consumer has gone away
func forward(ctx context.Context, eventCh chan<- Event, ev Event) {
	select {
	case eventCh <- ev:
	case <-ctx.Done():
	}
}

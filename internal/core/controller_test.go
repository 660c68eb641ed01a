package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/stats"
	"github.com/lumipallolabs/diskseek/internal/volumes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func staticVolumes(vols ...model.Volume) volumes.Enumerator {
	return volumes.EnumeratorFunc(func(context.Context) (model.Snapshot, error) {
		return model.NewSnapshot(vols), nil
	})
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("event channel was not closed")
			return out
		}
	}
}

func TestControllerSearchEmitsLifecycle(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "notes.txt", "docs/notes_old.md", "other.txt")

	c := NewController(Options{Workers: 2, Enumerator: staticVolumes()})
	req, err := model.NewSearchRequest(tmp, "notes", match.Substring, false, false)
	require.NoError(t, err)

	id, events := c.StartSearch(context.Background(), req)
	require.NotEmpty(t, id)

	got := collect(t, events)
	require.GreaterOrEqual(t, len(got), 2)

	started, ok := got[0].(SearchStartedEvent)
	require.True(t, ok)
	assert.Equal(t, id, started.ID)

	var names []string
	for _, ev := range got[1 : len(got)-1] {
		found, ok := ev.(EntryFoundEvent)
		require.True(t, ok)
		names = append(names, found.Entry.Name)
	}
	assert.ElementsMatch(t, []string{"notes.txt", "notes_old.md"}, names)

	done, ok := got[len(got)-1].(SearchCompletedEvent)
	require.True(t, ok)
	assert.NoError(t, done.Err)
	assert.False(t, done.Stopped)
	assert.Equal(t, int64(2), done.Matched)

	state := c.SearchState()
	assert.Equal(t, PhaseComplete, state.Phase)
	assert.Equal(t, int64(2), state.Matched)
	assert.Equal(t, 0, c.ActiveSearches())

	last := c.LastSearch()
	assert.False(t, last.Launched.After(last.Found))
}

func TestControllerStopSearch(t *testing.T) {
	tmp := t.TempDir()
	// More matches than the event buffer holds, so the walk can't finish unread
	const total = 500
	for i := 0; i < total; i++ {
		makeTree(t, tmp, filepath.Join(string(rune('a'+i%20)), "hit"+string(rune('a'+i/20))+".txt"))
	}

	c := NewController(Options{Workers: 2, Enumerator: staticVolumes()})
	req, err := model.NewSearchRequest(tmp, "hit", match.Substring, false, false)
	require.NoError(t, err)

	id, events := c.StartSearch(context.Background(), req)

	var (
		matched int
		done    SearchCompletedEvent
	)
	for ev := range events {
		switch e := ev.(type) {
		case EntryFoundEvent:
			matched++
			if matched == 3 {
				assert.True(t, c.StopSearch(id))
			}
		case SearchCompletedEvent:
			done = e
		}
	}

	assert.True(t, done.Stopped)
	assert.Less(t, matched, total)
	assert.Equal(t, PhaseStopped, c.SearchState().Phase)
	assert.False(t, c.StopSearch(id), "finished search is no longer registered")
}

func TestControllerStopUnknownIsNoop(t *testing.T) {
	c := NewController(Options{Enumerator: staticVolumes()})
	assert.False(t, c.StopSearch("does-not-exist"))
	assert.Equal(t, 0, c.StopAll())
}

func TestControllerSearchFailureReportsError(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "gone")
	require.NoError(t, os.Mkdir(root, 0755))

	req, err := model.NewSearchRequest(root, "x", match.Substring, false, false)
	require.NoError(t, err)
	require.NoError(t, os.Remove(root))

	c := NewController(Options{Enumerator: staticVolumes()})
	_, events := c.StartSearch(context.Background(), req)

	var gotErr bool
	for ev := range events {
		if _, ok := ev.(ErrorEvent); ok {
			gotErr = true
		}
	}
	assert.True(t, gotErr)
	assert.Equal(t, PhaseFailed, c.SearchState().Phase)
}

func TestControllerPersistsSearchStats(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "a.txt")
	stateDir := t.TempDir()

	mgr := stats.NewManager(stateDir)
	c := NewController(Options{Enumerator: staticVolumes(), Stats: mgr})
	require.NoError(t, c.SetRoot(tmp))

	req, err := model.NewSearchRequest(tmp, "a", match.Mask, true, false)
	require.NoError(t, err)
	_, events := c.StartSearch(context.Background(), req)
	collect(t, events)
	require.NoError(t, c.Close())

	reloaded := stats.NewManager(stateDir)
	require.NoError(t, reloaded.Load())
	s := reloaded.Stats()
	assert.Equal(t, tmp, s.LastDirectory)
	assert.Equal(t, "mask", s.Mode)
	assert.True(t, s.IncludeHidden)
	assert.Equal(t, int64(1), s.SearchCount)

	// A new controller starts from the remembered directory
	c2 := NewController(Options{Enumerator: staticVolumes(), Stats: reloaded})
	assert.Equal(t, tmp, c2.Root())
}

func TestControllerListAndSelectVolumes(t *testing.T) {
	c := NewController(Options{Enumerator: staticVolumes(
		model.Volume{Mountpoint: "/b", Kind: model.KindHDD},
		model.Volume{Mountpoint: "/a", Kind: model.KindSSD},
	)})

	snap, err := c.ListVolumes(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, "/a", snap[0].Mountpoint)

	v, err := c.SelectVolume(1)
	require.NoError(t, err)
	assert.Equal(t, "/b", v.Mountpoint)
	assert.Equal(t, "/b", c.Root())
	assert.Equal(t, 1, c.State().SelectedVolume)

	_, err = c.SelectVolume(5)
	assert.Error(t, err)
}

func TestControllerListVolumesError(t *testing.T) {
	c := NewController(Options{Enumerator: volumes.EnumeratorFunc(func(context.Context) (model.Snapshot, error) {
		return nil, errors.New("boom")
	})})

	_, err := c.ListVolumes(context.Background())
	assert.ErrorContains(t, err, "list volumes")
}

func TestControllerSetRootAndHistory(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	file := filepath.Join(a, "f.txt")
	makeTree(t, a, "f.txt")

	c := NewController(Options{Enumerator: staticVolumes()})
	require.NoError(t, c.SetRoot(a))
	require.NoError(t, c.SetRoot(b))

	assert.ErrorIs(t, c.SetRoot(file), model.ErrRootNotDir)
	assert.Error(t, c.SetRoot(filepath.Join(a, "missing")))

	root, ok := c.Back()
	assert.True(t, ok)
	assert.Equal(t, a, root)

	root, ok = c.Forward()
	assert.True(t, ok)
	assert.Equal(t, b, root)
	assert.False(t, c.State().CanGoForward)
}

func TestControllerWatchVolumes(t *testing.T) {
	var calls atomic.Int32
	enum := volumes.EnumeratorFunc(func(context.Context) (model.Snapshot, error) {
		if calls.Add(1) == 1 {
			return model.NewSnapshot([]model.Volume{{Mountpoint: "/"}, {Mountpoint: "/media/usb"}}), nil
		}
		return model.NewSnapshot([]model.Volume{{Mountpoint: "/"}}), nil
	})

	c := NewController(Options{Enumerator: enum, MonitorInterval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := c.WatchVolumes(ctx)

	first := (<-events).(VolumesChangedEvent)
	assert.Empty(t, first.Change.Removed)
	assert.Len(t, first.Change.Current, 2)

	second := (<-events).(VolumesChangedEvent)
	require.Len(t, second.Change.Removed, 1)
	assert.Equal(t, "/media/usb", second.Change.Removed[0].Mountpoint)
	assert.Len(t, c.Volumes(), 1)

	cancel()
	for range events {
	}
}

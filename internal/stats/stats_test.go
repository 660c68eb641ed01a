package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileStartsFresh(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Load())
	assert.Equal(t, Stats{}, m.Stats())
}

func TestCloseFlushesPendingSave(t *testing.T) {
	dir := t.TempDir()
	launched := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	m := NewManager(dir)
	m.SetLastDirectory("/home/user/projects")
	m.SetSearchOptions("mask", true, false)
	m.RecordSearch(LastSearch{Launched: launched, Found: launched.Add(1500 * time.Millisecond), Matched: 42})
	require.NoError(t, m.Close())

	reloaded := NewManager(dir)
	require.NoError(t, reloaded.Load())

	s := reloaded.Stats()
	assert.Equal(t, "/home/user/projects", s.LastDirectory)
	assert.Equal(t, "mask", s.Mode)
	assert.True(t, s.IncludeHidden)
	assert.False(t, s.MatchExtension)
	assert.Equal(t, int64(1), s.SearchCount)
	assert.Equal(t, int64(42), s.LastSearch.Matched)
	assert.Equal(t, 1500*time.Millisecond, reloaded.LastSearch().Took())
}

func TestDebouncedSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	m.saveDuration = 10 * time.Millisecond

	m.SetLastDirectory("/tmp")

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "stats.json"))
		return err == nil
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, m.Close())
}

func TestCloseWithoutChangesWritesNothing(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	require.NoError(t, m.Close())

	_, err := os.Stat(m.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stats.json"), []byte("{not json"), 0644))

	err := NewManager(dir).Load()
	assert.ErrorContains(t, err, "parse")
}

func TestLastSearchTook(t *testing.T) {
	now := time.Now()
	assert.Zero(t, LastSearch{}.Took())
	assert.Zero(t, LastSearch{Launched: now, Found: now.Add(-time.Second)}.Took())
	assert.Equal(t, time.Second, LastSearch{Launched: now, Found: now.Add(time.Second)}.Took())
}

package ui

import (
	"fmt"
	"testing"

	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, folder bool) model.DiscoveredEntry {
	return model.NewEntry("/root/"+name, folder)
}

func names(entries []model.DiscoveredEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestResultsFoldersFirstWhileStreaming(t *testing.T) {
	r := NewResultsPanel(true)
	r.Add(entry("b.txt", false))
	r.Add(entry("zdir", true))
	r.Add(entry("a.txt", false))
	r.Add(entry("adir", true))

	assert.Equal(t, []string{"zdir", "adir", "b.txt", "a.txt"}, names(r.Entries()))
	assert.Equal(t, 2, r.Folders())

	r.Finish()
	assert.Equal(t, []string{"adir", "zdir", "a.txt", "b.txt"}, names(r.Entries()))
}

func TestResultsArrivalOrderWithoutFoldersFirst(t *testing.T) {
	r := NewResultsPanel(false)
	r.Add(entry("b.txt", false))
	r.Add(entry("zdir", true))
	r.Add(entry("a.txt", false))

	r.Finish()
	assert.Equal(t, []string{"b.txt", "zdir", "a.txt"}, names(r.Entries()))
	assert.Equal(t, 1, r.Folders())
}

func TestResultsCursorFollowsEntryOnInsert(t *testing.T) {
	r := NewResultsPanel(true)
	r.SetSize(40, 20)
	r.Add(entry("one.txt", false))
	r.Add(entry("two.txt", false))
	r.MoveDown()

	sel, ok := r.Selected()
	require.True(t, ok)
	assert.Equal(t, "two.txt", sel.Name)

	// A folder lands ahead of the files
	r.Add(entry("dir", true))
	sel, _ = r.Selected()
	assert.Equal(t, "two.txt", sel.Name)
	assert.Equal(t, 2, r.Cursor())
}

func TestResultsCursorKeptAcrossFinish(t *testing.T) {
	r := NewResultsPanel(true)
	r.SetSize(40, 20)
	r.Add(entry("c.txt", false))
	r.Add(entry("a.txt", false))
	r.Add(entry("b.txt", false))
	r.MoveDown() // a.txt

	r.Finish()
	sel, _ := r.Selected()
	assert.Equal(t, "a.txt", sel.Name)
	assert.Equal(t, 0, r.Cursor())
}

func TestResultsNavigation(t *testing.T) {
	r := NewResultsPanel(false)
	r.SetSize(40, 12) // 10 visible rows
	for i := 0; i < 50; i++ {
		r.Add(entry(fmt.Sprintf("f%02d", i), false))
	}

	r.MoveUp()
	assert.Equal(t, 0, r.Cursor(), "can't move above the first entry")

	r.PageDown()
	assert.Equal(t, 9, r.Cursor())

	r.GoToBottom()
	assert.Equal(t, 49, r.Cursor())
	assert.Equal(t, 40, r.offset)

	r.MoveDown()
	assert.Equal(t, 49, r.Cursor(), "can't move past the last entry")

	r.PageUp()
	assert.Equal(t, 40, r.Cursor())

	r.GoToTop()
	assert.Equal(t, 0, r.Cursor())
	assert.Equal(t, 0, r.offset)
}

func TestResultsEmpty(t *testing.T) {
	r := NewResultsPanel(true)
	r.SetSize(40, 10)

	_, ok := r.Selected()
	assert.False(t, ok)

	r.PageDown()
	r.GoToBottom()
	assert.Equal(t, 0, r.Cursor())
	assert.Contains(t, r.View("No matches"), "No matches")
}

func TestResultsViewShowsCount(t *testing.T) {
	r := NewResultsPanel(true)
	r.SetSize(60, 10)
	r.Add(entry("dir", true))
	r.Add(entry("notes.txt", false))

	view := r.View("")
	assert.Contains(t, view, "1 of 2")
	assert.Contains(t, view, "notes.txt")
}

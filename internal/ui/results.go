package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/diskseek/internal/model"
)

// ResultsPanel lists discovered entries in arrival order.
// With folders-first on, folders are kept ahead of files while results
// stream in, and the whole list is sorted by name once the search ends.
type ResultsPanel struct {
	folders      []model.DiscoveredEntry
	files        []model.DiscoveredEntry
	foldersFirst bool
	cursor       int
	offset       int // scroll offset
	width        int
	height       int
	focused      bool
}

// NewResultsPanel creates an empty results panel
func NewResultsPanel(foldersFirst bool) ResultsPanel {
	return ResultsPanel{foldersFirst: foldersFirst, focused: true}
}

// Reset drops all entries
func (r *ResultsPanel) Reset() {
	r.folders = nil
	r.files = nil
	r.cursor = 0
	r.offset = 0
}

// Add appends one entry. A cursor left at the top stays there, otherwise
// it stays on the same entry.
func (r *ResultsPanel) Add(entry model.DiscoveredEntry) {
	if r.foldersFirst && entry.IsFolder {
		// Inserting ahead of the cursor shifts what it points at
		if r.cursor > 0 && r.cursor >= len(r.folders) {
			r.cursor++
		}
		r.folders = append(r.folders, entry)
		return
	}
	r.files = append(r.files, entry)
}

// Finish sorts the list once no more entries will arrive
func (r *ResultsPanel) Finish() {
	if !r.foldersFirst {
		return
	}
	selected, ok := r.Selected()

	model.SortEntries(r.folders)
	model.SortEntries(r.files)

	if ok && r.cursor > 0 {
		r.selectPath(selected.Path)
	}
}

func (r *ResultsPanel) selectPath(path string) {
	for i := 0; i < r.Len(); i++ {
		if r.at(i).Path == path {
			r.cursor = i
			r.ensureVisible()
			return
		}
	}
}

// Len returns the number of entries
func (r ResultsPanel) Len() int {
	return len(r.folders) + len(r.files)
}

// Folders returns how many entries are folders
func (r ResultsPanel) Folders() int {
	if r.foldersFirst {
		return len(r.folders)
	}
	n := 0
	for _, e := range r.files {
		if e.IsFolder {
			n++
		}
	}
	return n
}

func (r ResultsPanel) at(i int) model.DiscoveredEntry {
	if i < len(r.folders) {
		return r.folders[i]
	}
	return r.files[i-len(r.folders)]
}

// Entries returns entries in display order
func (r ResultsPanel) Entries() []model.DiscoveredEntry {
	out := make([]model.DiscoveredEntry, 0, r.Len())
	out = append(out, r.folders...)
	return append(out, r.files...)
}

// Selected returns the entry under the cursor
func (r ResultsPanel) Selected() (model.DiscoveredEntry, bool) {
	if r.cursor >= 0 && r.cursor < r.Len() {
		return r.at(r.cursor), true
	}
	return model.DiscoveredEntry{}, false
}

// Cursor returns the cursor index
func (r ResultsPanel) Cursor() int {
	return r.cursor
}

// SetSize sets the panel dimensions
func (r *ResultsPanel) SetSize(w, h int) {
	r.width = w
	r.height = h
	r.ensureVisible()
}

// SetFocused sets focus state
func (r *ResultsPanel) SetFocused(focused bool) {
	r.focused = focused
}

// MoveUp moves cursor up
func (r *ResultsPanel) MoveUp() {
	if r.cursor > 0 {
		r.cursor--
		r.ensureVisible()
	}
}

// MoveDown moves cursor down
func (r *ResultsPanel) MoveDown() {
	if r.cursor < r.Len()-1 {
		r.cursor++
		r.ensureVisible()
	}
}

// PageUp moves cursor up by a page
func (r *ResultsPanel) PageUp() {
	r.cursor -= r.pageSize()
	if r.cursor < 0 {
		r.cursor = 0
	}
	r.ensureVisible()
}

// PageDown moves cursor down by a page
func (r *ResultsPanel) PageDown() {
	r.cursor += r.pageSize()
	if r.cursor >= r.Len() {
		r.cursor = r.Len() - 1
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
	r.ensureVisible()
}

// GoToTop moves to first item
func (r *ResultsPanel) GoToTop() {
	r.cursor = 0
	r.offset = 0
}

// GoToBottom moves to last item
func (r *ResultsPanel) GoToBottom() {
	r.cursor = r.Len() - 1
	if r.cursor < 0 {
		r.cursor = 0
	}
	r.ensureVisible()
}

func (r ResultsPanel) pageSize() int {
	n := r.maxVisible() - 1
	if n < 1 {
		n = 1
	}
	return n
}

func (r ResultsPanel) maxVisible() int {
	n := r.height - 2 // account for borders
	if n < 1 {
		n = 1
	}
	return n
}

func (r *ResultsPanel) ensureVisible() {
	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	if maxVisible := r.maxVisible(); r.cursor >= r.offset+maxVisible {
		r.offset = r.cursor - maxVisible + 1
	}
}

// buildLine renders one entry without styling
func buildLine(entry model.DiscoveredEntry) string {
	if entry.IsFolder {
		return "▶ " + entry.Name + string(os.PathSeparator)
	}
	return "  " + entry.Name
}

// lines renders the visible entries, each at most maxW cells wide
func (r ResultsPanel) lines(maxW int) []string {
	if maxW < 1 {
		maxW = 1
	}

	var lines []string
	for i := r.offset; i < r.Len() && len(lines) < r.maxVisible(); i++ {
		entry := r.at(i)

		var itemStyle lipgloss.Style
		switch {
		case i == r.cursor && r.focused:
			itemStyle = ResultItemSelected.Width(maxW).MaxWidth(maxW)
		case i == r.cursor:
			itemStyle = ResultItemSelectedUnfocused.Width(maxW).MaxWidth(maxW)
		case entry.IsFolder:
			itemStyle = lipgloss.NewStyle().Foreground(ColorDir).MaxWidth(maxW)
		default:
			itemStyle = lipgloss.NewStyle().Foreground(ColorFile).MaxWidth(maxW)
		}
		lines = append(lines, itemStyle.Render(buildLine(entry)))
	}
	return lines
}

// Body renders the visible entries without a border, padded like View
func (r ResultsPanel) Body() string {
	lines := r.lines(r.width - 4)
	for i, line := range lines {
		lines[i] = " " + line
	}
	return strings.Join(lines, "\n")
}

// View renders the list in a bordered box, or empty when there is nothing to show
func (r ResultsPanel) View(empty string) string {
	box := ResultsPanelStyle.Width(r.width - 2).Height(r.height - 2)
	if r.Len() == 0 {
		dim := lipgloss.NewStyle().Foreground(ColorMuted)
		return box.Render(dim.Render(empty))
	}

	body := box.Render(strings.Join(r.lines(r.width-4), "\n"))
	return placeTitle(body, fmt.Sprintf(" %d of %d · %d folders ", r.cursor+1, r.Len(), r.Folders()))
}

// placeTitle writes a label into the top border of a rendered box
func placeTitle(box, title string) string {
	lines := strings.SplitN(box, "\n", 2)
	if len(lines) < 2 {
		return box
	}
	topW := lipgloss.Width(lines[0])
	if topW < len(title)+4 {
		return box
	}
	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorDim)
	top := borderStyle.Render("╭─") + titleStyle.Render(title) +
		borderStyle.Render(strings.Repeat("─", topW-3-lipgloss.Width(title))+"╮")
	return top + "\n" + lines[1]
}

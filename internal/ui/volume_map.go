package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/diskseek/internal/model"
)

const (
	minBlockWidth  = 8 // fits a short label
	minBlockHeight = 3 // border + 1 line text
)

// Block is one laid out volume rectangle in cell coordinates
type Block struct {
	Index  int // position in the snapshot
	Volume model.Volume
	X      int
	Y      int
	Width  int
	Height int
}

// volumeItem adapts a volume (or the root of all volumes) to squarify.TreeSizer
type volumeItem struct {
	index    int
	size     float64
	children []*volumeItem
}

// Size implements squarify.TreeSizer
func (v *volumeItem) Size() float64 {
	return v.size
}

// NumChildren implements squarify.TreeSizer
func (v *volumeItem) NumChildren() int {
	return len(v.children)
}

// Child implements squarify.TreeSizer
func (v *volumeItem) Child(i int) squarify.TreeSizer {
	return v.children[i]
}

// VolumeMap draws mounted volumes as a treemap sized by capacity and
// coloured by how full they are
type VolumeMap struct {
	volumes  model.Snapshot
	selected int
	width    int
	height   int
	blocks   []Block
}

// NewVolumeMap creates an empty volume map
func NewVolumeMap() VolumeMap {
	return VolumeMap{selected: -1}
}

// SetVolumes replaces the snapshot and re-runs the layout
func (m *VolumeMap) SetVolumes(volumes model.Snapshot) {
	m.volumes = volumes
	m.layout()
}

// SetSelected highlights the volume at idx (-1 for none)
func (m *VolumeMap) SetSelected(idx int) {
	m.selected = idx
}

// SetSize sets the dimensions and re-runs the layout
func (m *VolumeMap) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.layout()
}

// Blocks returns the current layout
func (m VolumeMap) Blocks() []Block {
	return m.blocks
}

// layout computes block rectangles. Volumes too small to get a readable
// block are left out of the map; the header tabs still list them.
func (m *VolumeMap) layout() {
	m.blocks = nil
	if m.width < minBlockWidth || m.height < minBlockHeight {
		return
	}

	items := make([]*volumeItem, 0, len(m.volumes))
	for i, v := range m.volumes {
		if v.TotalGB == 0 {
			continue
		}
		items = append(items, &volumeItem{index: i, size: float64(v.TotalGB)})
	}
	if len(items) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].size > items[j].size
	})

	rect := squarify.Rect{X: 0, Y: 0, W: float64(m.width), H: float64(m.height)}

	// Drop the smallest volumes until every block is readable
	for n := len(items); n > 0; n-- {
		root := &volumeItem{children: items[:n]}
		for _, child := range root.children {
			root.size += child.size
		}

		blocks, metas := squarify.Squarify(root, rect, squarify.Options{
			MaxDepth: 1,
			Sort:     true,
		})

		var out []Block
		allFit := true
		for i, block := range blocks {
			if i >= len(metas) || metas[i].Depth != 0 {
				continue
			}
			item, ok := block.TreeSizer.(*volumeItem)
			if !ok {
				continue
			}

			// Round both edges so neighbours share a boundary
			x := int(math.Round(block.X))
			y := int(math.Round(block.Y))
			w := int(math.Round(block.X+block.W)) - x
			h := int(math.Round(block.Y+block.H)) - y
			if x+w > m.width {
				w = m.width - x
			}
			if y+h > m.height {
				h = m.height - y
			}
			if w < minBlockWidth || h < minBlockHeight {
				allFit = false
				break
			}

			out = append(out, Block{
				Index:  item.index,
				Volume: m.volumes[item.index],
				X:      x,
				Y:      y,
				Width:  w,
				Height: h,
			})
		}

		if allFit {
			m.blocks = out
			return
		}
	}
}

// renderBlock draws one block with its border and labels
func (m VolumeMap) renderBlock(b Block) string {
	style := VolumeBlock
	if b.Index == m.selected {
		style = VolumeBlockSelected
	} else {
		style = style.BorderForeground(usageColor(b.Volume.UsedPercent()))
	}

	innerW := b.Width - 2
	innerH := b.Height - 2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	nameStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(ColorDim)
	pctStyle := lipgloss.NewStyle().Foreground(usageColor(b.Volume.UsedPercent()))

	lines := []string{nameStyle.Render(truncateLeft(b.Volume.Mountpoint, innerW))}
	if innerH > 1 {
		lines = append(lines, dimStyle.Render(truncateLeft(
			fmt.Sprintf("%s of %s", FormatGB(b.Volume.UsedGB), FormatGB(b.Volume.TotalGB)), innerW)))
	}
	if innerH > 2 {
		lines = append(lines, pctStyle.Render(truncateLeft(
			fmt.Sprintf("%.0f%% %s", b.Volume.UsedPercent(), b.Volume.Label()), innerW)))
	}

	return style.
		Width(innerW).
		Height(innerH).
		MaxHeight(b.Height).
		Render(strings.Join(lines, "\n"))
}

// View renders the map by compositing blocks line by line
func (m VolumeMap) View() string {
	if len(m.blocks) == 0 {
		dim := lipgloss.NewStyle().Foreground(ColorMuted)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dim.Render("No volumes"))
	}

	type renderedBlock struct {
		block Block
		lines []string
	}

	rendered := make([]renderedBlock, 0, len(m.blocks))
	for _, b := range m.blocks {
		rendered = append(rendered, renderedBlock{b, strings.Split(m.renderBlock(b), "\n")})
	}

	type segment struct {
		x     int
		width int
		line  string
	}

	outputLines := make([]string, 0, m.height)
	for y := 0; y < m.height; y++ {
		var segments []segment
		for _, rb := range rendered {
			idx := y - rb.block.Y
			if idx >= 0 && idx < len(rb.lines) && idx < rb.block.Height {
				segments = append(segments, segment{rb.block.X, rb.block.Width, rb.lines[idx]})
			}
		}
		sort.Slice(segments, func(i, j int) bool {
			return segments[i].x < segments[j].x
		})

		var line strings.Builder
		x := 0
		for _, seg := range segments {
			if seg.x > x {
				line.WriteString(strings.Repeat(" ", seg.x-x))
			}
			line.WriteString(seg.line)
			x = seg.x + seg.width
		}
		outputLines = append(outputLines, line.String())
	}

	return strings.Join(outputLines, "\n")
}

// truncateLeft keeps the end of s, which is the informative part of a path
func truncateLeft(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[1:]
	}
	return "…" + string(r)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/diskseek/internal/model"
)

const headerProgressBarWidth = 20 // Width of volume usage bar

// Header displays the app name, the selected volume and the volume tabs (2 lines)
type Header struct {
	volumes  model.Snapshot
	selected int
	width    int
	version  string
}

// NewHeader creates a new header component
func NewHeader(version string) Header {
	return Header{
		selected: -1,
		version:  version,
	}
}

// SetVolumes updates the mounted volumes
func (h *Header) SetVolumes(volumes model.Snapshot) {
	h.volumes = volumes
	if h.selected >= len(volumes) {
		h.selected = -1
	}
}

// SetSelected sets the selected volume index (-1 for none)
func (h *Header) SetSelected(idx int) {
	if idx >= -1 && idx < len(h.volumes) {
		h.selected = idx
	}
}

// Selected returns the selected volume
func (h Header) Selected() (model.Volume, bool) {
	if h.selected < 0 || h.selected >= len(h.volumes) {
		return model.Volume{}, false
	}
	return h.volumes[h.selected], true
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
// Line 1: DiskSeek 0.1.0                Used: X / Y [bar] XX%
// Line 2: [ / ] [ /media/usb ] ...       N volumes
func (h Header) View() string {
	nameStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	versionStyle := lipgloss.NewStyle().
		Foreground(ColorDim)

	// === LINE 1: App name (left) | Usage of the selected volume (right) ===
	appName := nameStyle.Render("DiskSeek") + versionStyle.Render(" "+h.version)

	var usage string
	if v, ok := h.Selected(); ok {
		pct := v.UsedPercent()
		label := LabelStyle.Render("Used: ")
		value := StatsStyle.Render(fmt.Sprintf("%s / %s", FormatGB(v.UsedGB), FormatGB(v.TotalGB)))
		usage = label + value

		fullWidth := lipgloss.Width(usage) + 2 + headerProgressBarWidth + 5
		if h.width >= lipgloss.Width(appName)+fullWidth+4 {
			usage += "  " + usageBar(pct, headerProgressBarWidth) + StatsStyle.Render(fmt.Sprintf(" %3.0f%%", pct))
		}
	}

	line1 := spread(appName, usage, h.width)

	// === LINE 2: Volume tabs (left) | Volume count (right) ===
	count := LabelStyle.Render(fmt.Sprintf("%d volumes", len(h.volumes)))
	if len(h.volumes) == 1 {
		count = LabelStyle.Render("1 volume")
	}

	var tabs strings.Builder
	budget := h.width - lipgloss.Width(count) - 4
	for i, v := range h.volumes {
		style := VolumeTabInactive
		if i == h.selected {
			style = VolumeTabActive
		}
		tab := style.Render(v.Mountpoint)
		if v.Removable {
			tab = style.Render(v.Mountpoint + " ⏏")
		}
		if lipgloss.Width(tabs.String())+lipgloss.Width(tab)+1 > budget {
			tabs.WriteString(LabelStyle.Render(" …"))
			break
		}
		if i > 0 {
			tabs.WriteString(" ")
		}
		tabs.WriteString(tab)
	}

	line2 := spread(tabs.String(), count, h.width)

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

// spread places left and right on one line with at least two spaces between
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

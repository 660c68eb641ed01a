package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/diskseek/internal/model"
)

const (
	selectorBarWidth      = 12
	selectorMaxMountWidth = 28
)

// VolumeSelector is the overlay for picking a volume as the search root.
// Each row shows the mountpoint, kind badge, usage bar and free space.
type VolumeSelector struct {
	volumes model.Snapshot
	cursor  int
	visible bool
	width   int
	height  int
}

func NewVolumeSelector() VolumeSelector {
	return VolumeSelector{}
}

// SetVolumes replaces the rows, keeping the cursor on the same mountpoint
func (s *VolumeSelector) SetVolumes(volumes model.Snapshot) {
	var current string
	if s.cursor < len(s.volumes) {
		current = s.volumes[s.cursor].Mountpoint
	}
	s.volumes = volumes
	s.cursor = 0
	for i, v := range volumes {
		if v.Mountpoint == current {
			s.cursor = i
			break
		}
	}
	if len(volumes) == 0 {
		s.visible = false
	}
}

func (s *VolumeSelector) SetSelected(idx int) {
	if idx >= 0 && idx < len(s.volumes) {
		s.cursor = idx
	}
}

// Selected returns the row under the cursor
func (s VolumeSelector) Selected() int {
	return s.cursor
}

// SetVisible shows the overlay; it stays hidden without volumes
func (s *VolumeSelector) SetVisible(visible bool) {
	s.visible = visible && len(s.volumes) > 0
}

func (s VolumeSelector) IsVisible() bool {
	return s.visible
}

func (s *VolumeSelector) SetSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *VolumeSelector) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *VolumeSelector) MoveDown() {
	if s.cursor < len(s.volumes)-1 {
		s.cursor++
	}
}

// kindBadge colours the removable/SSD/HDD label
func kindBadge(v model.Volume) string {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	label := v.Label()
	switch {
	case v.Removable:
		style = style.Foreground(ColorWarning)
		label = "⏏ " + label
	case v.Kind == model.KindSSD:
		style = style.Foreground(ColorCyan)
	case v.Kind == model.KindHDD:
		style = style.Foreground(ColorSuccess)
	}
	return style.Render(fmt.Sprintf("%-11s", label))
}

// rows renders one aligned line per volume, without selection styling
func (s VolumeSelector) rows() []string {
	mountWidth := 0
	for _, v := range s.volumes {
		if w := lipgloss.Width(v.Mountpoint); w > mountWidth {
			mountWidth = w
		}
	}
	if mountWidth > selectorMaxMountWidth {
		mountWidth = selectorMaxMountWidth
	}

	rows := make([]string, len(s.volumes))
	for i, v := range s.volumes {
		mp := truncateLeft(v.Mountpoint, mountWidth)
		mp += strings.Repeat(" ", mountWidth-lipgloss.Width(mp))

		var usage string
		if v.TotalGB == 0 {
			usage = LabelStyle.Render("capacity unknown")
		} else {
			usage = usageBar(v.UsedPercent(), selectorBarWidth) +
				StatsStyle.Render(fmt.Sprintf(" %3.0f%%", v.UsedPercent())) +
				LabelStyle.Render(fmt.Sprintf("  %s free of %s", FormatGB(v.AvailableGB), FormatGB(v.TotalGB)))
		}
		rows[i] = mp + "  " + kindBadge(v) + " " + usage
	}
	return rows
}

// View renders the overlay centred in the window
func (s VolumeSelector) View() string {
	if !s.visible || len(s.volumes) == 0 {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render("Select Volume")
	marker := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	lines := []string{title, ""}
	for i, row := range s.rows() {
		if i == s.cursor {
			lines = append(lines, marker.Render("▶ ")+lipgloss.NewStyle().Bold(true).Render(row))
			continue
		}
		lines = append(lines, "  "+row)
	}
	lines = append(lines, "", KeyHint.Render("↑/↓")+LabelStyle.Render(" select  ")+
		KeyHint.Render("Enter")+LabelStyle.Render(" search here  ")+
		KeyHint.Render("Esc")+LabelStyle.Render(" cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}

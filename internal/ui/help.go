package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 14 // Width for key column in help text (includes padding)

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	version string
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(version string) HelpOverlay {
	return HelpOverlay{version: version}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (h *HelpOverlay) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 3)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	keyStyle := HelpOverlayKey
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var content strings.Builder

	nameStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	content.WriteString(nameStyle.Render("DiskSeek"))
	if h.version != "" {
		content.WriteString(dimStyle.Render(" " + h.version))
	}
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("Search"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "/ or Tab", "Edit pattern"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Enter", "Start search (while editing)"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "s / ^X", "Stop search"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "m / ^T", "Cycle substring, mask, regex"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, ".", "Include hidden entries"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "x", "Match extension too"))

	content.WriteString(sectionStyle.Render("Results"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "↑↓ jk", "Navigate"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "PgUp/PgDn", "Scroll faster"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "g / G", "Top / Bottom"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Enter", "Search in folder / open file"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "⌫ / [", "Previous folder"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "]", "Next folder"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "o", "Open in file manager"))

	content.WriteString(sectionStyle.Render("Volumes"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "e", "Choose volume"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "v", "Next volume"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "q", "Quit"))

	content.WriteString("\n")
	content.WriteString(dimStyle.Render("Press any key to close"))

	box := boxStyle.Render(content.String())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// HelpBar renders a bottom help bar with key hints
func HelpBar(width int, editing bool) string {
	descStyle := lipgloss.NewStyle().Foreground(ColorDim)

	type hint struct {
		key  string
		desc string
	}

	var fullHints, compactHints []hint
	if editing {
		fullHints = []hint{
			{"Enter", "search"},
			{"^X", "stop"},
			{"^T", "mode"},
			{"Esc", "results"},
			{"^C", "quit"},
		}
		compactHints = []hint{
			{"Enter", "search"},
			{"Esc", "results"},
		}
	} else {
		fullHints = []hint{
			{"/", "pattern"},
			{"↑↓", "navigate"},
			{"Enter", "open"},
			{"⌫", "back"},
			{"s", "stop"},
			{"m", "mode"},
			{"e", "volumes"},
			{"?", "help"},
			{"q", "quit"},
		}
		compactHints = []hint{
			{"/", "pattern"},
			{"Enter", "open"},
			{"?", "help"},
			{"q", "quit"},
		}
	}

	// Minimal hints for very narrow terminals
	minimalHints := []hint{
		{"?", "help"},
		{"q", "quit"},
	}

	var hints []hint
	switch {
	case width >= 100:
		hints = fullHints
	case width >= 60:
		hints = compactHints
	default:
		hints = minimalHints
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, HelpKey.Render(h.key)+" "+descStyle.Render(h.desc))
	}

	separator := "   "
	if width < 80 {
		separator = "  "
	}

	return HelpStyle.Width(width).MaxHeight(1).Render(strings.Join(parts, separator))
}

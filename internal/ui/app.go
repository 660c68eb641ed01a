package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/lumipallolabs/diskseek/internal/core"
	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/model"
)

// Message types for Bubble Tea
type (
	searchEventsMsg struct {
		id     string
		events []core.Event
		closed bool
	}
	volumeEventMsg struct{ event core.VolumesChangedEvent }
	spinnerTickMsg struct{}
)

// Spinner frames - modern braille dots spinner
var spinnerFrames = []string{
	"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏",
}

// Timing constants
const (
	spinnerTickInterval = 80 * time.Millisecond
	borderRotationSpeed = 33 // milliseconds per frame
)

// maxEventBatch bounds how many queued search events one message carries
const maxEventBatch = 256

const (
	headerHeight  = 2
	searchHeight  = 1
	statusHeight  = 1
	helpBarHeight = 1
	detailsHeight = 4
)

var errNoRoot = errors.New("choose a volume (e) or start with a folder argument")

// Options sets the initial search settings of the TUI
type Options struct {
	Version        string
	Pattern        string
	Mode           match.Mode
	IncludeHidden  bool
	MatchExtension bool
	FoldersFirst   bool
}

// App is the main TUI application model
type App struct {
	// Core controller (business logic)
	ctrl *core.Controller

	// UI Components
	header         Header
	input          textinput.Model
	results        ResultsPanel
	volumeMap      VolumeMap
	help           HelpOverlay
	volumeSelector VolumeSelector
	keys           KeyMap
	version        string

	// Search settings for the next search
	mode           match.Mode
	includeHidden  bool
	matchExtension bool

	// UI state (TUI-specific)
	editing     bool
	err         error
	notice      string
	detailsPath string
	details     []string

	// Lifetime of background work started by the TUI
	ctx  context.Context
	stop context.CancelFunc

	// Event channels (for continuing to listen after each event)
	searchID      string
	searchCancel  context.CancelFunc
	searchEventCh <-chan core.Event
	volumeEventCh <-chan core.Event

	// Dimensions
	width        int
	height       int
	resultsWidth int
}

// NewApp creates a new application instance and starts watching volumes
func NewApp(ctrl *core.Controller, opts Options) App {
	ctx, stop := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "file or folder name"
	input.CharLimit = 256
	input.SetValue(opts.Pattern)
	input.Focus()

	app := App{
		ctrl:           ctrl,
		header:         NewHeader(opts.Version),
		input:          input,
		results:        NewResultsPanel(opts.FoldersFirst),
		volumeMap:      NewVolumeMap(),
		help:           NewHelpOverlay(opts.Version),
		volumeSelector: NewVolumeSelector(),
		keys:           DefaultKeyMap(),
		version:        opts.Version,
		mode:           opts.Mode,
		includeHidden:  opts.IncludeHidden,
		matchExtension: opts.MatchExtension,
		editing:        true,
		ctx:            ctx,
		stop:           stop,
	}
	app.results.SetFocused(false)
	app.volumeEventCh = ctrl.WatchVolumes(ctx)

	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("DiskSeek"),
		textinput.Blink,
		a.listenForVolumeEvents(),
	)
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case searchEventsMsg:
		// Events from a replaced search are dropped
		if msg.id != a.searchID {
			return a, nil
		}
		for _, event := range msg.events {
			a.handleSearchEvent(event)
		}
		a.refreshDetails()
		if msg.closed {
			a.searchEventCh = nil
			return a, nil
		}
		return a, a.listenForSearchEvents()

	case volumeEventMsg:
		a.applyVolumes(msg.event.Change)
		return a, a.listenForVolumeEvents()

	case spinnerTickMsg:
		if a.ctrl.SearchState().IsSearching() {
			return a, tickSpinner()
		}
		return a, nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleSearchEvent applies one event of the running search
func (a *App) handleSearchEvent(event core.Event) {
	switch e := event.(type) {
	case core.SearchStartedEvent:
		logging.Debug.Printf("[TUI] Search %s started in %s", e.ID, e.Root)

	case core.EntryFoundEvent:
		a.results.Add(e.Entry)

	case core.SearchCompletedEvent:
		a.results.Finish()
		if e.Stopped {
			a.notice = fmt.Sprintf("Stopped after %d matches", e.Matched)
		}

	case core.ErrorEvent:
		a.err = e.Err
	}
}

// listenForSearchEvents reads the next events of the current search,
// batching whatever is already queued
func (a App) listenForSearchEvents() tea.Cmd {
	if a.searchEventCh == nil {
		return nil
	}
	id, eventCh := a.searchID, a.searchEventCh
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return searchEventsMsg{id: id, closed: true}
		}
		events := []core.Event{event}
		for len(events) < maxEventBatch {
			select {
			case event, ok := <-eventCh:
				if !ok {
					return searchEventsMsg{id: id, events: events, closed: true}
				}
				events = append(events, event)
			default:
				return searchEventsMsg{id: id, events: events}
			}
		}
		return searchEventsMsg{id: id, events: events}
	}
}

// listenForVolumeEvents creates a command that listens for volume changes
func (a App) listenForVolumeEvents() tea.Cmd {
	if a.volumeEventCh == nil {
		return nil
	}
	eventCh := a.volumeEventCh
	return func() tea.Msg {
		for event := range eventCh {
			if e, ok := event.(core.VolumesChangedEvent); ok {
				return volumeEventMsg{event: e}
			}
		}
		return nil // Channel closed
	}
}

func tickSpinner() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// applyVolumes refreshes every volume view from the controller
func (a *App) applyVolumes(change model.VolumesChanged) {
	vols := a.ctrl.Volumes()
	selected := a.selectedVolume(vols)

	a.header.SetVolumes(vols)
	a.header.SetSelected(selected)
	a.volumeMap.SetVolumes(vols)
	a.volumeMap.SetSelected(selected)
	a.volumeSelector.SetVolumes(vols)

	if len(change.Removed) > 0 {
		names := make([]string, 0, len(change.Removed))
		for _, v := range change.Removed {
			names = append(names, v.Mountpoint)
		}
		a.notice = "Removed: " + strings.Join(names, ", ")
	}

	// Nothing to search yet - offer the volumes
	if a.ctrl.Root() == "" && len(vols) > 0 {
		a.volumeSelector.SetVisible(true)
	}
}

// selectedVolume returns the chosen volume, or the one holding the root
func (a App) selectedVolume(vols model.Snapshot) int {
	if idx := a.ctrl.State().SelectedVolume; idx >= 0 {
		return idx
	}
	return containingVolume(vols, a.ctrl.Root())
}

// containingVolume returns the index of the volume with the longest
// mountpoint that contains path, or -1
func containingVolume(vols model.Snapshot, path string) int {
	best, bestLen := -1, -1
	if path == "" {
		return best
	}
	for i, v := range vols {
		mp := v.Mountpoint
		inside := path == mp ||
			strings.HasPrefix(path, strings.TrimSuffix(mp, string(filepath.Separator))+string(filepath.Separator))
		if inside && len(mp) > bestLen {
			best, bestLen = i, len(mp)
		}
	}
	return best
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay - any key closes it
	if a.help.IsVisible() {
		a.help.SetVisible(false)
		return a, nil
	}

	// Volume selector overlay
	if a.volumeSelector.IsVisible() {
		switch {
		case key.Matches(msg, a.keys.ForceQuit):
			return a.quit()
		case key.Matches(msg, a.keys.Blur):
			a.volumeSelector.SetVisible(false)
		case key.Matches(msg, a.keys.Up):
			a.volumeSelector.MoveUp()
		case key.Matches(msg, a.keys.Down):
			a.volumeSelector.MoveDown()
		case key.Matches(msg, a.keys.Open):
			a.volumeSelector.SetVisible(false)
			return a.selectVolume(a.volumeSelector.Selected())
		}
		return a, nil
	}

	if a.editing {
		return a.handleEditingKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Focus):
		return a, a.setEditing(true)

	case key.Matches(msg, a.keys.Stop):
		a.stopSearch()
		return a, nil

	case key.Matches(msg, a.keys.CycleMode):
		a.mode = a.mode.Next()
		return a, nil

	case key.Matches(msg, a.keys.ToggleHidden):
		a.includeHidden = !a.includeHidden
		return a, nil

	case key.Matches(msg, a.keys.ToggleExt):
		a.matchExtension = !a.matchExtension
		return a, nil

	case key.Matches(msg, a.keys.SelectVolume):
		a.volumeSelector.SetSelected(a.header.selected)
		a.volumeSelector.SetVisible(true)
		return a, nil

	case key.Matches(msg, a.keys.NextVolume):
		if n := len(a.ctrl.Volumes()); n > 0 {
			return a.selectVolume((a.ctrl.State().SelectedVolume + 1) % n)
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.results.MoveUp()
	case key.Matches(msg, a.keys.Down):
		a.results.MoveDown()
	case key.Matches(msg, a.keys.PageUp):
		a.results.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.results.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.results.GoToTop()
	case key.Matches(msg, a.keys.Bottom):
		a.results.GoToBottom()

	case key.Matches(msg, a.keys.Open):
		return a.openSelected()

	case key.Matches(msg, a.keys.Back):
		if _, ok := a.ctrl.Back(); ok {
			return a.rootChanged()
		}
		return a, nil

	case key.Matches(msg, a.keys.Forward):
		if _, ok := a.ctrl.Forward(); ok {
			return a.rootChanged()
		}
		return a, nil

	case key.Matches(msg, a.keys.OpenExplorer):
		if entry, ok := a.results.Selected(); ok {
			logging.Debug.Printf("[TUI] Revealing %s", entry.Path)
			if err := openInFileManager(entry.Path); err != nil {
				a.err = err
			}
		}
		return a, nil
	}

	a.refreshDetails()
	return a, nil
}

// handleEditingKey handles keys while the pattern field has focus
func (a App) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return a.quit()
	case key.Matches(msg, a.keys.Search):
		return a.startSearch()
	case key.Matches(msg, a.keys.Blur):
		return a, a.setEditing(false)
	}

	// Control-key shortcuts; printable keys belong to the field
	if msg.Type != tea.KeyRunes {
		switch {
		case key.Matches(msg, a.keys.Stop):
			a.stopSearch()
			return a, nil
		case key.Matches(msg, a.keys.CycleMode):
			a.mode = a.mode.Next()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// setEditing moves focus between the pattern field and the results
func (a *App) setEditing(editing bool) tea.Cmd {
	a.editing = editing
	a.results.SetFocused(!editing)
	if editing {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

// startSearch replaces any running search with a new one
func (a App) startSearch() (tea.Model, tea.Cmd) {
	root := a.ctrl.Root()
	if root == "" {
		a.err = errNoRoot
		return a, nil
	}

	req, err := model.NewSearchRequest(root, a.input.Value(), a.mode, a.includeHidden, a.matchExtension)
	if err != nil {
		a.err = err
		return a, nil
	}

	a.cancelSearch()

	ctx, cancel := context.WithCancel(a.ctx)
	id, eventCh := a.ctrl.StartSearch(ctx, req)
	a.searchID = id
	a.searchCancel = cancel
	a.searchEventCh = eventCh

	a.results.Reset()
	a.err = nil
	a.notice = ""
	a.detailsPath = ""
	a.details = nil
	a.setEditing(false)

	return a, tea.Batch(a.listenForSearchEvents(), tickSpinner())
}

// stopSearch asks the running search to stop; its completion still arrives
func (a *App) stopSearch() {
	if a.searchID != "" && a.ctrl.StopSearch(a.searchID) {
		logging.Debug.Printf("[TUI] Stop requested for %s", a.searchID)
	}
}

// cancelSearch stops the running search and abandons its events
func (a *App) cancelSearch() {
	a.stopSearch()
	if a.searchCancel != nil {
		a.searchCancel()
		a.searchCancel = nil
	}
	a.searchEventCh = nil
}

// openSelected searches inside a folder or opens a file
func (a App) openSelected() (tea.Model, tea.Cmd) {
	entry, ok := a.results.Selected()
	if !ok {
		return a, nil
	}

	if !entry.IsFolder {
		logging.Debug.Printf("[TUI] Opening %s", entry.Path)
		if err := openDefault(entry.Path); err != nil {
			a.err = err
		}
		return a, nil
	}

	if err := a.ctrl.SetRoot(entry.Path); err != nil {
		a.err = err
		return a, nil
	}
	return a.rootChanged()
}

// selectVolume makes a volume the search root
func (a App) selectVolume(idx int) (tea.Model, tea.Cmd) {
	if _, err := a.ctrl.SelectVolume(idx); err != nil {
		a.err = err
		return a, nil
	}
	return a.rootChanged()
}

// rootChanged reruns the current pattern in the new root
func (a App) rootChanged() (tea.Model, tea.Cmd) {
	selected := a.selectedVolume(a.ctrl.Volumes())
	a.header.SetSelected(selected)
	a.volumeMap.SetSelected(selected)
	a.err = nil

	if strings.TrimSpace(a.input.Value()) == "" {
		a.cancelSearch()
		a.results.Reset()
		a.refreshDetails()
		return a, a.setEditing(true)
	}
	return a.startSearch()
}

// quit stops background work and flushes stats before exiting
func (a App) quit() (tea.Model, tea.Cmd) {
	a.cancelSearch()
	a.stop()
	if err := a.ctrl.Close(); err != nil {
		logging.Debug.Printf("[TUI] Close failed: %v", err)
	}
	return a, tea.Quit
}

// refreshDetails describes the selected entry when the selection moved
func (a *App) refreshDetails() {
	entry, ok := a.results.Selected()
	if !ok {
		a.detailsPath = ""
		a.details = nil
		return
	}
	if entry.Path == a.detailsPath {
		return
	}
	a.detailsPath = entry.Path
	a.details = describeEntry(entry)
}

// describeEntry builds the lines of the details box
func describeEntry(entry model.DiscoveredEntry) []string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	pathStyle := lipgloss.NewStyle().Foreground(ColorCyan)
	sep := labelStyle.Render(" │ ")

	kind := "Folder"
	if !entry.IsFolder {
		kind = "File"
		if fileType := getFileType(entry.Path); fileType != "" {
			kind = fileType + " file"
		}
	}

	parts := []string{valueStyle.Render(entry.Name), sep, labelStyle.Render(kind)}
	if info, err := os.Stat(entry.Path); err == nil {
		if !entry.IsFolder {
			parts = append(parts, sep, labelStyle.Render(FormatSize(info.Size())))
		}
		parts = append(parts, sep, labelStyle.Render("M: "+FormatTime(info.ModTime())))
	} else {
		parts = append(parts, sep, lipgloss.NewStyle().Foreground(ColorDanger).Render("gone"))
	}

	return []string{
		strings.Join(parts, ""),
		pathStyle.Render(entry.Path),
	}
}

// getFileType detects file type using magic numbers
func getFileType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	if ext := mtype.Extension(); ext != "" {
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return ""
}

// updateLayout calculates component sizes
func (a *App) updateLayout() {
	mainHeight := a.mainHeight()

	a.resultsWidth = a.width * 3 / 5
	if a.resultsWidth < 30 {
		a.resultsWidth = a.width
	}
	rightWidth := a.width - a.resultsWidth

	a.header.SetWidth(a.width)
	a.input.Width = a.width / 2
	a.results.SetSize(a.resultsWidth, mainHeight)
	a.volumeMap.SetSize(rightWidth, mainHeight-1-detailsHeight)
	a.help.SetSize(a.width, a.height)
	a.volumeSelector.SetSize(a.width, a.height)
}

func (a App) mainHeight() int {
	h := a.height - headerHeight - searchHeight - statusHeight - helpBarHeight
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	// Overlays
	if a.help.IsVisible() {
		return a.renderOverlay(a.help.View())
	}
	if a.volumeSelector.IsVisible() {
		return a.renderOverlay(a.volumeSelector.View())
	}

	sections := []string{
		a.header.View(),
		a.searchBar(),
		a.renderMainPanels(),
		a.statusLine(),
		HelpBar(a.width, a.editing),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderOverlay renders an overlay centered on screen
func (a App) renderOverlay(overlay string) string {
	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorBackground),
	)
}

// searchBar renders the pattern field with the active settings
func (a App) searchBar() string {
	toggle := func(name string, on bool) string {
		if on {
			return ToggleOn.Render("● " + name)
		}
		return ToggleOff.Render("○ " + name)
	}
	settings := ModeBadge.Render(a.mode.String()) + " " +
		toggle("hidden", a.includeHidden) + " " +
		toggle("ext", a.matchExtension)
	return spread(" "+a.input.View(), settings+" ", a.width)
}

// renderMainPanels renders results on the left and volumes on the right
func (a App) renderMainPanels() string {
	mainHeight := a.mainHeight()
	state := a.ctrl.SearchState()

	var results string
	if state.IsSearching() {
		results = renderSpinningBorder(a.results.Body(), a.resultsWidth, mainHeight, time.Now())
	} else {
		results = a.results.View(a.emptyResultsText(state))
	}

	rightWidth := a.width - a.resultsWidth
	if rightWidth < minBlockWidth {
		return results
	}

	rootStyle := lipgloss.NewStyle().Foreground(ColorDim).Width(rightWidth).MaxWidth(rightWidth)
	nav := ""
	if app := a.ctrl.State(); app.CanGoBack || app.CanGoForward {
		nav = " " + KeyHint.Render("⌫") + " " + KeyHint.Render("]")
	}
	rootLine := rootStyle.Render(" in " + truncateLeft(a.ctrl.Root(), rightWidth-12) + nav)

	detailsStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true, false, false, false).
		BorderForeground(ColorBorder).
		Width(rightWidth).
		MaxWidth(rightWidth).
		Height(detailsHeight - 1).
		Padding(0, 1)
	details := detailsStyle.Render(strings.Join(a.details, "\n"))

	right := lipgloss.JoinVertical(lipgloss.Left, rootLine, a.volumeMap.View(), details)
	return lipgloss.JoinHorizontal(lipgloss.Top, results, right)
}

func (a App) emptyResultsText(state core.SearchState) string {
	switch {
	case a.ctrl.Root() == "":
		return "Choose a volume with e"
	case state.Phase == core.PhaseIdle:
		return "Type a name and press Enter"
	case state.Phase == core.PhaseFailed:
		return "Search failed"
	default:
		return "No matches"
	}
}

// statusLine shows live progress, or the timing of the last search
func (a App) statusLine() string {
	dim := lipgloss.NewStyle().Foreground(ColorDim)
	accent := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	var line string
	state := a.ctrl.SearchState()
	switch {
	case a.err != nil:
		line = lipgloss.NewStyle().Foreground(ColorDanger).Render("Error: " + a.err.Error())

	case state.IsSearching():
		frame := spinnerFrames[int(time.Now().UnixMilli()/spinnerTickInterval.Milliseconds())%len(spinnerFrames)]
		line = accent.Render(frame+" Searching") + dim.Render(fmt.Sprintf(
			" %q (%s) · %d visited · %d found · %s",
			state.Pattern, state.Mode, state.Visited, state.Matched, FormatDuration(state.Elapsed())))

	default:
		last := a.ctrl.LastSearch()
		if !last.Launched.IsZero() {
			line = dim.Render(fmt.Sprintf("Last search: launched %s · found %s (%s) · %d matches",
				last.Launched.Format("15:04:05"), last.Found.Format("15:04:05"),
				FormatDuration(last.Took()), last.Matched))
			if last.Stopped {
				line += dim.Render(" · stopped")
			}
		}
		if a.notice != "" {
			line = lipgloss.NewStyle().Foreground(ColorWarning).Render(a.notice) + "  " + line
		}
	}

	return lipgloss.NewStyle().Width(a.width).MaxWidth(a.width).Padding(0, 1).Render(line)
}

// renderSpinningBorder draws a box with spinning gradient border
func renderSpinningBorder(content string, width, height int, t time.Time) string {
	shades := []string{
		"#00FFFF", "#30EBE0", "#5EEAD4", "#70E0D8", "#85D5E0", "#9AC5E8", "#A8B0F0", "#B89AF8",
		"#C084FC", "#C880F0", "#D080E8", "#D87CDE", "#E07CD4", "#F079CC", "#FF79C6", "#F079CC",
		"#E07CD4", "#D87CDE", "#D080E8", "#C880F0", "#C084FC", "#B89AF8", "#A8B0F0", "#9AC5E8",
		"#85D5E0", "#70E0D8", "#5EEAD4", "#30EBE0",
	}

	innerW := width - 2
	innerH := height - 2
	if innerW < 1 || innerH < 1 {
		return content
	}
	perimeter := 2*innerW + 2*innerH + 4

	offset := int(t.UnixMilli()/borderRotationSpeed) % perimeter

	getColor := func(pos int) lipgloss.Style {
		adjustedPos := (pos - offset + perimeter) % perimeter
		shadeIdx := (adjustedPos * len(shades) / perimeter) % len(shades)
		return lipgloss.NewStyle().Foreground(lipgloss.Color(shades[shadeIdx]))
	}

	const (
		topLeft     = "╭"
		topRight    = "╮"
		bottomLeft  = "╰"
		bottomRight = "╯"
		horizontal  = "─"
		vertical    = "│"
	)

	var result strings.Builder
	pos := 0

	result.WriteString(getColor(pos).Render(topLeft))
	pos++
	for i := 0; i < innerW; i++ {
		result.WriteString(getColor(pos).Render(horizontal))
		pos++
	}
	result.WriteString(getColor(pos).Render(topRight))
	pos++
	result.WriteString("\n")

	contentLines := strings.Split(content, "\n")
	for i := 0; i < innerH; i++ {
		result.WriteString(getColor(perimeter - 1 - i).Render(vertical))

		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if lineWidth := lipgloss.Width(line); lineWidth < innerW {
			line += strings.Repeat(" ", innerW-lineWidth)
		} else if lineWidth > innerW {
			line = lipgloss.NewStyle().MaxWidth(innerW).Render(line)
		}
		result.WriteString(line)

		result.WriteString(getColor(pos).Render(vertical))
		pos++
		result.WriteString("\n")
	}

	bottomStart := pos
	result.WriteString(getColor(perimeter - innerH - 1).Render(bottomLeft))
	for i := 0; i < innerW; i++ {
		result.WriteString(getColor(bottomStart + innerW - i).Render(horizontal))
	}
	result.WriteString(getColor(bottomStart).Render(bottomRight))

	return result.String()
}

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/diskseek/internal/core"
	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/stats"
	"github.com/lumipallolabs/diskseek/internal/ui"
	"github.com/spf13/cobra"
)

func newTUICommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [ROOT]",
		Short: "Start the interactive interface (the default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(e, args)
		},
	}
}

func runTUI(e *env, args []string) error {
	var root string
	if len(args) > 0 {
		root = args[0]
	}

	mgr := e.statsManager()
	ctrl := core.NewController(core.Options{
		Workers:         e.cfg.Workers,
		MonitorInterval: e.cfg.MonitorInterval,
		Enumerator:      e.enumerator(),
		Stats:           mgr,
		Root:            root,
	})
	defer ctrl.Close()

	p := tea.NewProgram(ui.NewApp(ctrl, tuiOptions(e, mgr.Stats())), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// tuiOptions starts from the config and restores the settings of the last
// session once one has been recorded
func tuiOptions(e *env, s stats.Stats) ui.Options {
	opts := ui.Options{
		Version:        Version,
		Mode:           e.cfg.DefaultMode,
		IncludeHidden:  e.cfg.IncludeHidden,
		MatchExtension: e.cfg.MatchExtension,
		FoldersFirst:   e.cfg.SortFoldersFirst,
	}
	if s.SearchCount == 0 {
		return opts
	}

	if mode, err := match.ParseMode(s.Mode); err == nil {
		opts.Mode = mode
	} else {
		logging.Debug.Printf("[CLI] Ignoring saved mode %q: %v", s.Mode, err)
	}
	opts.IncludeHidden = s.IncludeHidden
	opts.MatchExtension = s.MatchExtension
	return opts
}

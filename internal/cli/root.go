package cli

import (
	"io"
	"os"

	"github.com/lumipallolabs/diskseek/internal/config"
	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/stats"
	"github.com/lumipallolabs/diskseek/internal/volumes"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// env carries what every subcommand needs once flags are parsed
type env struct {
	configPath string
	debug      bool

	cfg  *config.Config
	enum volumes.Enumerator // nil means the running system
}

// NewRootCommand creates and returns the root cobra command for diskseek
func NewRootCommand() *cobra.Command {
	return newRootCommand(&env{})
}

func newRootCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diskseek [ROOT]",
		Short: "Find files and folders by name and watch mounted volumes",
		Long: `DiskSeek searches a directory tree for entries whose names match a
pattern, in one of three modes:

  substring  name contains the pattern
  mask       wildcard mask (* any run, ? one character)
  regex      regular expression, unanchored

It also tracks mounted volumes and reports when one is attached or removed.
Without a subcommand the interactive interface starts.`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(e, args)
		},
	}

	cmd.PersistentFlags().StringVar(&e.configPath, "config", "", "Path to config file (default: ~/.diskseek/config.yaml)")
	cmd.PersistentFlags().BoolVar(&e.debug, "debug", false, "Write a debug log to the state directory")

	// Add subcommands
	cmd.AddCommand(newSearchCommand(e))
	cmd.AddCommand(newVolumesCommand(e))
	cmd.AddCommand(newWatchCommand(e))
	cmd.AddCommand(newTUICommand(e))

	return cmd
}

// load reads and validates the configuration and turns on logging
func (e *env) load() error {
	path := e.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg

	if e.debug || os.Getenv("DISKSEEK_DEBUG") != "" {
		logging.Enable(cfg.StateDir, cfg.LogLevel)
		logging.Debug.Printf("[CLI] Loaded config from %s", path)
	}
	return nil
}

// enumerator returns the volume source
func (e *env) enumerator() volumes.Enumerator {
	if e.enum == nil {
		e.enum = volumes.NewSystem()
	}
	return e.enum
}

// statsManager opens the persisted stats. A damaged file is logged and replaced.
func (e *env) statsManager() *stats.Manager {
	mgr := stats.NewManager(e.cfg.StateDir)
	if err := mgr.Load(); err != nil {
		logging.Debug.Printf("[CLI] Ignoring stats: %v", err)
	}
	return mgr
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

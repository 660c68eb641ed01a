package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumipallolabs/diskseek/internal/core"
	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/sink"
	"github.com/spf13/cobra"
)

// searchFlags holds the search subcommand flags
type searchFlags struct {
	mode           string
	includeHidden  bool
	matchExtension bool
	json           bool
	sorted         bool
}

func newSearchCommand(e *env) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search ROOT PATTERN",
		Short: "Stream entries under ROOT whose names match PATTERN",
		Long: `Walk ROOT and print every file or folder whose name matches PATTERN.

Names are matched without their extension unless --ext is given, and
dot-prefixed entries (and everything under them) are skipped unless
--hidden is given. Press Ctrl+C to stop early; results found so far are kept.

Examples:
  diskseek search ~ report                     # names containing "report"
  diskseek search . '*.go' --mode mask --ext   # Go sources
  diskseek search /data '^img_\d+$' --mode regex --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, e, flags, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "Match mode: substring, mask or regex (default from config)")
	cmd.Flags().BoolVar(&flags.includeHidden, "hidden", false, "Include dot-prefixed entries")
	cmd.Flags().BoolVar(&flags.matchExtension, "ext", false, "Match against the full name including the extension")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Write JSON lines instead of text")
	cmd.Flags().BoolVar(&flags.sorted, "sort", false, "Print folders first, sorted by name, once the search ends")

	return cmd
}

func runSearch(cmd *cobra.Command, e *env, flags searchFlags, root, pattern string) error {
	mode := e.cfg.DefaultMode
	if flags.mode != "" {
		parsed, err := match.ParseMode(flags.mode)
		if err != nil {
			return err
		}
		mode = parsed
	}
	includeHidden := e.cfg.IncludeHidden
	if cmd.Flags().Changed("hidden") {
		includeHidden = flags.includeHidden
	}
	matchExtension := e.cfg.MatchExtension
	if cmd.Flags().Changed("ext") {
		matchExtension = flags.matchExtension
	}

	req, err := model.NewSearchRequest(root, pattern, mode, includeHidden, matchExtension)
	if err != nil {
		return err
	}

	ctrl := core.NewController(core.Options{
		Workers:    e.cfg.Workers,
		Enumerator: e.enumerator(),
		Stats:      e.statsManager(),
		Root:       req.Root,
	})
	defer ctrl.Close()

	out := newOutput(cmd.OutOrStdout(), flags.json)

	// Ctrl+C asks the walker to stop; the search still completes normally
	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	id, events := ctrl.StartSearch(context.Background(), req)
	go func() {
		<-sigCtx.Done()
		if ctrl.StopSearch(id) {
			logging.Debug.Printf("[CLI] Stop requested for %s", id)
		}
	}()

	var (
		found  []model.DiscoveredEntry
		result core.SearchCompletedEvent
	)
	for event := range events {
		switch ev := event.(type) {
		case core.EntryFoundEvent:
			if flags.sorted {
				found = append(found, ev.Entry)
				continue
			}
			out.Publish(sink.EventAdd, ev.Entry)
		case core.SearchCompletedEvent:
			result = ev
		}
	}

	if flags.sorted {
		model.SortEntries(found)
		for _, entry := range found {
			out.Publish(sink.EventAdd, entry)
		}
	}

	if result.Err != nil {
		return result.Err
	}
	if !flags.json {
		printSummary(cmd.ErrOrStderr(), result)
	}
	return nil
}

// printSummary reports totals on stderr so stdout stays pipeable
func printSummary(w io.Writer, result core.SearchCompletedEvent) {
	status := "done"
	if result.Stopped {
		status = "stopped"
	}
	fmt.Fprintf(w, "%d matches, %d entries visited in %s (%s)\n",
		result.Matched, result.Visited, result.Elapsed.Round(time.Millisecond), status)
}

// newOutput picks JSON lines or the console sink
func newOutput(w io.Writer, asJSON bool) sink.Sink {
	if asJSON {
		return sink.NewJSONLines(w)
	}
	return sink.NewConsole(w, !isTerminal(w))
}

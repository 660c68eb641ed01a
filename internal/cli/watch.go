package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/sink"
	"github.com/lumipallolabs/diskseek/internal/volumes"
	"github.com/spf13/cobra"
)

// watchFlags holds the watch subcommand flags
type watchFlags struct {
	interval time.Duration
	json     bool
	count    int
}

func newWatchCommand(e *env) *cobra.Command {
	var flags watchFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the volume list whenever a volume is attached or removed",
		Long: `Poll mounted volumes and print the full list every time the set of
mountpoints changes. The first report lists everything already attached.
Capacity changes on their own are not reported.

Examples:
  diskseek watch                  # until Ctrl+C
  diskseek watch --interval 5s
  diskseek watch --json --count 2 # stop after two reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interval := e.cfg.MonitorInterval
			if cmd.Flags().Changed("interval") {
				interval = flags.interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, e.enumerator(), interval, newOutput(cmd.OutOrStdout(), flags.json), flags.count)
		},
	}

	cmd.Flags().DurationVarP(&flags.interval, "interval", "i", volumes.DefaultInterval, "Polling interval")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Write JSON lines instead of text")
	cmd.Flags().IntVarP(&flags.count, "count", "n", 0, "Stop after this many reports (0 = until interrupted)")

	return cmd
}

// runWatch relays monitor reports to out until ctx is done or count is reached
func runWatch(ctx context.Context, enum volumes.Enumerator, interval time.Duration, out sink.Sink, count int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := sink.NewChan(16)
	defer ch.Close()

	logged := sink.Func(func(event string, payload any) {
		if change, ok := payload.(model.VolumesChanged); ok {
			logging.Volumes.Debugf("report: %d mounted, %d removed", len(change.Current), len(change.Removed))
		}
	})

	monitor := volumes.NewMonitor(enum, interval, sink.Multi{ch, logged})
	go monitor.Run(ctx)

	logging.Debug.Printf("[CLI] Watching volumes every %v", monitor.Interval())

	reports := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-ch.Messages():
			out.Publish(msg.Event, msg.Payload)
			reports++
			if count > 0 && reports >= count {
				return nil
			}
		}
	}
}

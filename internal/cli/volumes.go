package cli

import (
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/sink"
	"github.com/spf13/cobra"
)

func newVolumesCommand(e *env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "volumes",
		Short: "List mounted volumes with their capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := e.enumerator().Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			out := newOutput(cmd.OutOrStdout(), asJSON)
			out.Publish(sink.EventVolumes, model.VolumesChanged{Current: snap})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write a JSON line instead of text")

	return cmd
}

// Package push implements the delivery command: send previously generated
// catalog documents to the printer.
package push

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/filasync/internal/cmdutil"
	"github.com/agentstation/filasync/internal/pipeline"
	"github.com/agentstation/filasync/internal/slicer"
	"github.com/agentstation/filasync/pkg/logging"
	"github.com/agentstation/filasync/pkg/remote"
)

// NewCommand creates the push command.
func NewCommand() *cobra.Command {
	var flags *cmdutil.RunFlags

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Deliver generated documents to the printer",
		Long: `Push sends the locally generated material database and options
documents to the printer over SSH. Both files must already exist in the
output directory (run sync first); the existing remote copies are backed up
unless --no-backup is set. Writes are atomic on the device.`,
		Example: `  filasync push                        # deliver ./out to the sole printer
  filasync push --printer kobra3 -o out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecutePush(cmd.Context(), flags)
		},
	}

	flags = &cmdutil.RunFlags{}
	flags.AddOutputFlag(cmd)
	flags.AddPrinterFlags(cmd)

	return cmd
}

// ExecutePush delivers the output directory's documents.
func ExecutePush(ctx context.Context, flags *cmdutil.RunFlags) error {
	registry, err := slicer.LoadRegistry(flags.PrintersFile)
	if err != nil {
		return err
	}
	printer, err := registry.Find(flags.Printer)
	if err != nil {
		return err
	}
	ctx = logging.WithFields(ctx, map[string]any{
		"printer": printer.Name,
		"output":  flags.Output,
	})
	dial := remote.NewDialer(printer.SSHConfig())

	if err := pipeline.Push(ctx, dial, printer, flags.Output, flags.NoBackup); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Msg("Push complete")
	return nil
}

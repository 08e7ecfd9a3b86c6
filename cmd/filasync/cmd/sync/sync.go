// Package sync implements the full pipeline command: discover, expand,
// derive identities, reconcile both catalog documents, and deliver them.
package sync

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/filasync/internal/cmdutil"
	"github.com/agentstation/filasync/internal/pipeline"
	"github.com/agentstation/filasync/internal/slicer"
	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/logging"
	"github.com/agentstation/filasync/pkg/remote"
)

// NewCommand creates the sync command.
func NewCommand() *cobra.Command {
	var flags *cmdutil.RunFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize filament presets to the printer",
		Long: `Sync runs the whole pipeline:

1. Discover the slicer's user filament presets
2. Expand truncated presets through their template-inheritance chain
3. Derive a stable identity for every preset
4. Reconcile the printer's material database and options documents
   (live baseline when the printer is reachable, bundled snapshot otherwise)
5. Back up and deliver the regenerated documents over SSH

The material database is built before the options document; each remote
fetch uses its own connection.`,
		Example: `  filasync sync                        # sync the sole configured printer
  filasync sync --printer kobra3       # pick a printer from printers.yaml
  filasync sync --force                # regenerate existing expanded presets
  filasync sync --no-backup            # skip remote backups before delivery`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteSync(cmd.Context(), flags)
		},
	}

	flags = &cmdutil.RunFlags{}
	flags.AddDiscoveryFlags(cmd)
	flags.AddOutputFlag(cmd)
	flags.AddForceFlag(cmd)
	flags.AddPrinterFlags(cmd)

	return cmd
}

// ExecuteSync orchestrates the complete sync process.
func ExecuteSync(ctx context.Context, flags *cmdutil.RunFlags) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()

	registry, err := slicer.LoadRegistry(flags.PrintersFile)
	if err != nil {
		return err
	}
	printer, err := registry.Find(flags.Printer)
	if err != nil {
		return err
	}
	ctx = logging.WithPrinter(ctx, printer.Name)
	dial := remote.NewDialer(printer.SSHConfig())

	opts := pipeline.Options{
		InputDir:   flags.Input,
		ProfileDir: flags.Profiles,
		OutputDir:  flags.Output,
		Force:      flags.Force,
		NoBackup:   flags.NoBackup,
	}

	summary := &pipeline.Summary{}

	paths, err := pipeline.Discover(opts)
	if err != nil {
		return err
	}

	presets, err := pipeline.Load(paths.UserPresetDir, summary)
	if err != nil {
		return err
	}

	presets = pipeline.Expand(ctx, presets, paths.SystemProfileDir, opts.OutputDir, opts.Force, summary)
	presets = pipeline.EnsureIdentities(ctx, presets, summary)

	if err := pipeline.BuildDocuments(ctx, dial, printer, presets, opts.OutputDir, summary); err != nil {
		return err
	}

	if err := pipeline.Push(ctx, dial, printer, opts.OutputDir, opts.NoBackup); err != nil {
		return err
	}

	summary.Log(ctx)
	logging.Ctx(ctx).Info().Msg("Sync complete")
	return nil
}

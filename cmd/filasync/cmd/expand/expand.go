// Package expand implements the resolver-only command: reconstruct full
// presets from truncated user overrides and write them locally, without
// touching a printer.
package expand

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/filasync/internal/cmdutil"
	"github.com/agentstation/filasync/internal/pipeline"
	"github.com/agentstation/filasync/pkg/logging"
)

// NewCommand creates the expand command.
func NewCommand() *cobra.Command {
	var flags *cmdutil.RunFlags

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand truncated presets through their template chain",
		Long: `Expand reconstructs fully-populated presets from truncated user
overrides by composing the root template, the system template, and the user's
edits, in that priority order. Results are written to the output directory;
existing files are kept unless --force is set.`,
		Example: `  filasync expand                      # expand into ./out
  filasync expand -o expanded --force  # regenerate everything`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteExpand(cmd.Context(), flags)
		},
	}

	flags = &cmdutil.RunFlags{}
	flags.AddDiscoveryFlags(cmd)
	flags.AddOutputFlag(cmd)
	flags.AddForceFlag(cmd)

	return cmd
}

// ExecuteExpand runs the discovery and resolver stages only.
func ExecuteExpand(ctx context.Context, flags *cmdutil.RunFlags) error {
	opts := pipeline.Options{
		InputDir:   flags.Input,
		ProfileDir: flags.Profiles,
		OutputDir:  flags.Output,
		Force:      flags.Force,
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

	pipeline.Expand(ctx, presets, paths.SystemProfileDir, opts.OutputDir, opts.Force, summary)

	logging.Ctx(ctx).Info().
		Int("expanded", summary.Expanded).
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Int("written", summary.Written).
		Int("existing", summary.Existing).
		Msg("Expansion complete")
	return nil
}

// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommand creates the version command.
func NewCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "filasync %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// Package cmdutil provides shared flags and configuration utilities for filasync commands.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// RunFlags holds the pipeline flags. Each command registers only the groups
// it reads, so no command advertises a flag it ignores.
type RunFlags struct {
	Input        string
	Profiles     string
	Output       string
	Force        bool
	NoBackup     bool
	Printer      string
	PrintersFile string
}

// AddDiscoveryFlags registers the local preset discovery flags.
func (f *RunFlags) AddDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Input, "input", "i", "",
		"User preset directory (default: discover per slicer/OS)")
	cmd.Flags().StringVar(&f.Profiles, "profiles", "",
		"System profile root for template lookup (default: discover)")
}

// AddOutputFlag registers the local output directory flag.
func (f *RunFlags) AddOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Output, "output", "o", "out",
		"Directory for expanded presets and generated documents")
}

// AddForceFlag registers the expanded-preset overwrite flag.
func (f *RunFlags) AddForceFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Force, "force", "f", false,
		"Overwrite existing expanded preset files")
}

// AddPrinterFlags registers the printer selection and delivery flags.
func (f *RunFlags) AddPrinterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Printer, "printer", "p", "",
		"Printer name from the registry (optional when only one is configured)")
	cmd.Flags().StringVar(&f.PrintersFile, "printers", "printers.yaml",
		"Path to the printer registry file")
	cmd.Flags().BoolVar(&f.NoBackup, "no-backup", false,
		"Skip backing up remote files before delivery")
}

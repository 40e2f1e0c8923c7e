// Package cli implements the bard command line interface: an interactive
// device simulator plus inspection commands for the persistent save slot.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string // path to a YAML config file; empty means built-in defaults
}

// NewRootCommand creates the root command for the bard CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bard",
		Short: "bard - interactive content selection device",
		Long: `bard simulates a four-button content selection device: random pick
without repeats, back/forward history navigation, and a save slot that
survives deep sleep.`,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML config (default: built-in)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))

	return cmd
}

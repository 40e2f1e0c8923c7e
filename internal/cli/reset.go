package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brownbearcreative/bard/internal/config"
	"github.com/brownbearcreative/bard/internal/store"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the save slot",
		Long: `Clear the persisted snapshot, slept marker, and session token.
The next run cold-starts with a fresh deck and empty history.

Example:
  bard reset --config bard.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(rootOpts, cmd)
		},
	}

	return cmd
}

func runReset(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open save slot", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, key := range []string{store.KeySnapshot, store.KeySlept, store.KeySession} {
		if err := st.Delete(ctx, store.Namespace, key); err != nil {
			return WrapExitError(ExitCommandError, "failed to clear save slot", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Save slot cleared.")
	return nil
}

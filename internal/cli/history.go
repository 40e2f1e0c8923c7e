package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brownbearcreative/bard/internal/config"
	"github.com/brownbearcreative/bard/internal/content"
	"github.com/brownbearcreative/bard/internal/engine"
	"github.com/brownbearcreative/bard/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the history saved in the save slot",
		Long: `Show the selection history persisted by the last sleep, oldest first.
The line marked with ">" is where the device's back/forward cursor was
pointing when it went to sleep.

Example:
  bard history --config bard.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	catalog, err := content.Load(cfg.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
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

	blob, ok, err := st.Read(ctx, store.Namespace, store.KeySnapshot)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read save slot", err)
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved state.")
		return nil
	}

	snap, err := store.UnmarshalSnapshot(blob)
	if err != nil {
		return WrapExitError(ExitFailure, "saved snapshot is corrupt", err)
	}

	// Rehydrating through the engine reuses its snapshot validation and
	// its ring-to-logical-order unwinding.
	eng := engine.New(snap.Count, newRand(0))
	if err := eng.Restore(snap); err != nil {
		return WrapExitError(ExitFailure, "saved snapshot rejected", err)
	}

	entries := eng.HistoryEntries()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "History is empty.")
		return nil
	}

	cursor := eng.HistoryCursor()
	for i, idx := range entries {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		line, ok := catalog.Line(int(idx))
		if !ok {
			line = "(outside catalog)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%3d  %s\n", marker, idx, line)
	}
	return nil
}

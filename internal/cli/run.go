package cli

import (
	"bufio"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brownbearcreative/bard/internal/config"
	"github.com/brownbearcreative/bard/internal/content"
	"github.com/brownbearcreative/bard/internal/engine"
	"github.com/brownbearcreative/bard/internal/host"
	"github.com/brownbearcreative/bard/internal/render"
	"github.com/brownbearcreative/bard/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Seed uint64
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive device simulator",
		Long: `Start the device simulator. Buttons are driven from stdin, one key
per line:

  r   tap Random (new pick, no repeats until the deck is exhausted)
  n   tap Next (step forward through history)
  p   tap Prev (step backward through history)
  s   hold Sleep (persists state and exits)
  q   quit without saving

State is persisted to the SQLite save slot configured under "database";
a boot after "s" restores the saved history and current pick.

Example:
  bard run
  bard run --config bard.yaml --seed 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulator(opts, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "deck shuffle seed (0 = random)")

	return cmd
}

func runSimulator(opts *RunOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	log := slog.New(handler)

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
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing save slot", "error", closeErr)
		}
	}()

	eng := engine.New(catalog.Count(), newRand(opts.Seed))
	h := host.New(
		eng,
		catalog,
		render.NewConsole(cmd.OutOrStdout()),
		render.NewStatusLine(cmd.OutOrStdout()),
		st,
		log,
		host.Options{
			BootSplash:  engine.Ticks(cfg.BootSplashMS),
			IgnoreInput: engine.Ticks(cfg.IgnoreInputMS),
			Pins: map[host.Role]int{
				host.RoleSleep:  cfg.Pins.Sleep,
				host.RoleRandom: cfg.Pins.Random,
				host.RoleNext:   cfg.Pins.Next,
				host.RolePrev:   cfg.Pins.Prev,
			},
		},
	)

	// Setup signal handling for graceful shutdown
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Key reader: one command per stdin line. Closing stdin quits.
	keys := make(chan byte, 8)
	go func() {
		defer close(keys)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := scanner.Text()
			if len(line) == 0 {
				continue
			}
			select {
			case keys <- line[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	clock := engine.NewWallClock()

	// A "press" is simulated as holding the raw level high until a
	// deadline; the debounce and hold classification run exactly as they
	// would against real hardware.
	pressUntil := map[host.Role]engine.Ticks{}
	levels := func(now engine.Ticks) host.Levels {
		raw := host.Levels{}
		for role, until := range pressUntil {
			raw[role] = engine.Before(now, until)
		}
		return raw
	}

	now := clock.Now()
	if err := h.Start(ctx, levels(now), now); err != nil {
		return WrapExitError(ExitCommandError, "failed to start device", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Keys: r=random  n=next  p=prev  s=sleep  q=quit")

	ticker := time.NewTicker(time.Duration(cfg.TickIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case key, ok := <-keys:
			if !ok || key == 'q' {
				fmt.Fprintln(cmd.OutOrStdout(), "Bye.")
				return nil
			}
			now := clock.Now()
			tapFor := engine.DebounceWindow + 10
			switch key {
			case 'r':
				pressUntil[host.RoleRandom] = now + tapFor
			case 'n':
				pressUntil[host.RoleNext] = now + tapFor
			case 'p':
				pressUntil[host.RolePrev] = now + tapFor
			case 's':
				pressUntil[host.RoleSleep] = now + engine.HoldThreshold + tapFor
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Unknown key %q\n", string(key))
			}

		case <-ticker.C:
			now := clock.Now()
			if h.Tick(ctx, levels(now), now) {
				fmt.Fprintln(cmd.OutOrStdout(), "State saved. Sleeping.")
				return nil
			}
		}
	}
}

// newRand builds the deck shuffle source. Seed zero draws entropy from the
// OS so every unseeded run shuffles differently.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		var b [16]byte
		if _, err := crand.Read(b[:]); err == nil {
			return rand.New(rand.NewPCG(
				binary.LittleEndian.Uint64(b[:8]),
				binary.LittleEndian.Uint64(b[8:]),
			))
		}
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Package config loads and validates the device host configuration.
//
// Configuration is a small YAML file validated against an embedded CUE
// schema before use. The engine's interaction constants (debounce window,
// hold threshold, operation latency) are deliberately NOT configurable
// here - they are fixed engine constants; this file covers host-level
// tunables only.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Pins identifies the physical inputs. Pin numbers are opaque to the core;
// the simulator only uses them for logging.
type Pins struct {
	Sleep  int `yaml:"sleep" json:"sleep"`
	Random int `yaml:"random" json:"random"`
	Next   int `yaml:"next" json:"next"`
	Prev   int `yaml:"prev" json:"prev"`
}

// Config holds host-level tunables.
type Config struct {
	// BootSplashMS is how long the boot indication is held before the
	// device accepts work.
	BootSplashMS uint32 `yaml:"boot_splash_ms" json:"boot_splash_ms"`

	// IgnoreInputMS suppresses gestures briefly after boot/wake to avoid
	// accidental triggers from startup jitter or a button held through
	// reset.
	IgnoreInputMS uint32 `yaml:"ignore_input_ms" json:"ignore_input_ms"`

	// TickIntervalMS is the simulator's polling cadence.
	TickIntervalMS uint32 `yaml:"tick_interval_ms" json:"tick_interval_ms"`

	// Database is the path of the SQLite save slot.
	Database string `yaml:"database" json:"database"`

	// Catalog is the path of a YAML content catalog; empty means the
	// embedded default.
	Catalog string `yaml:"catalog" json:"catalog"`

	Pins Pins `yaml:"pins" json:"pins"`
}

// Default returns the built-in configuration (the firmware's constants).
func Default() Config {
	return Config{
		BootSplashMS:   2000,
		IgnoreInputMS:  200,
		TickIntervalMS: 10,
		Database:       "bard.db",
		Catalog:        "",
		Pins: Pins{
			Sleep:  7,
			Random: 4,
			Next:   5,
			Prev:   6,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config against the embedded CUE schema plus the
// cross-field rules CUE does not express well (pin distinctness).
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("config schema has no #Config: %w", err)
	}

	if err := def.Unify(ctx.Encode(c)).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	seen := map[int]string{}
	for _, p := range []struct {
		name string
		pin  int
	}{
		{"sleep", c.Pins.Sleep},
		{"random", c.Pins.Random},
		{"next", c.Pins.Next},
		{"prev", c.Pins.Prev},
	} {
		if other, dup := seen[p.pin]; dup {
			return fmt.Errorf("config: pins %s and %s share pin %d", other, p.name, p.pin)
		}
		seen[p.pin] = p.name
	}

	return nil
}

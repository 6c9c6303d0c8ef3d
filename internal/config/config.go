// Package config defines the application configuration and its resolution
// chain: CLI flags take precedence over PHICALC_* environment variables,
// which take precedence over the built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/sequence"
)

// EnvPrefix is the prefix of every environment variable read by this package.
const EnvPrefix = "PHICALC_"

// DefaultTimeout bounds a whole estimation run. Generation is O(n) with
// n <= sequence.MaxCapacity, so this is generous; it exists to give SIGINT
// and deadline handling a deterministic exit path.
const DefaultTimeout = 30 * time.Second

// AppConfig holds the complete runtime configuration of the application.
type AppConfig struct {
	// N is the number of sequence terms to generate.
	N int
	// Capacity is the sequence buffer capacity.
	Capacity int
	// Width selects the integer representation ("int32", "int64", "big", "all").
	Width string
	// Timeout bounds the whole estimation run.
	Timeout time.Duration
	// AllowOverflow lets fixed-width runs continue past their safe range.
	AllowOverflow bool
	// Broken selects the deliberately truncated integer division.
	Broken bool
	// Quiet reduces output to the bare convergence report.
	Quiet bool
	// Verbose enables debug logging and the full terms line.
	Verbose bool
	// ShowTerms prints the generated terms line (implied by Verbose).
	ShowTerms bool
	// OutputFile is the path for the written report (empty for none).
	OutputFile string
	// NoColor disables ANSI color output.
	NoColor bool
	// TUI launches the interactive dashboard instead of the CLI report.
	TUI bool
	// ServeAddr starts the HTTP API/metrics server on this address when set.
	ServeAddr string
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment variable overrides for flags left unset, and validates the
// result.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for flag parsing and usage output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		N:        sequence.DefaultCapacity,
		Capacity: sequence.DefaultCapacity,
		Width:    "all",
		Timeout:  DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.IntVar(&cfg.N, "n", cfg.N, "number of sequence terms to generate (>= 2)")
	fs.IntVar(&cfg.Capacity, "cap", cfg.Capacity, fmt.Sprintf("sequence buffer capacity (2..%d)", sequence.MaxCapacity))
	fs.StringVar(&cfg.Width, "width", cfg.Width, "integer representation: int32, int64, big or all")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "global timeout for the run")
	fs.BoolVar(&cfg.AllowOverflow, "allow-overflow", false, "run fixed widths past their safe range (wraparound demonstration)")
	fs.BoolVar(&cfg.Broken, "broken", false, "use the truncated integer division (implicit-conversion demonstration)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the convergence lines and the terms line")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging and the full report")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.BoolVar(&cfg.ShowTerms, "terms", false, "print the generated terms line")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the report to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")
	fs.BoolVar(&cfg.TUI, "tui", false, "launch the interactive dashboard")
	fs.StringVar(&cfg.ServeAddr, "serve", "", "serve the HTTP API and Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate enforces the configuration invariants shared by all run modes.
func validate(cfg AppConfig) error {
	if cfg.Capacity < 2 || cfg.Capacity > sequence.MaxCapacity {
		return apperrors.NewConfigError("capacity %d out of range (2..%d)", cfg.Capacity, sequence.MaxCapacity)
	}
	if cfg.N < 2 {
		return apperrors.NewConfigError("n must be at least 2 to define a ratio, got %d", cfg.N)
	}
	if cfg.N > cfg.Capacity {
		return apperrors.NewConfigError("n %d exceeds buffer capacity %d", cfg.N, cfg.Capacity)
	}
	if cfg.Width != "all" {
		if _, err := sequence.ParseWidth(cfg.Width); err != nil {
			return apperrors.NewConfigError("%v", err)
		}
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}

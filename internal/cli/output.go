// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayConvergenceReport], [DisplayQuietReport], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatConvergenceLine].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteReportToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/phicalc/internal/estimator"
	"github.com/agbru/phicalc/internal/format"
	"github.com/agbru/phicalc/internal/metrics"
	"github.com/agbru/phicalc/internal/sequence"
	"github.com/agbru/phicalc/internal/ui"
)

// OutputConfig holds configuration for report output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the convergence lines.
	Quiet bool
	// Verbose shows the per-index error column.
	Verbose bool
	// ShowTerms enables the generated-terms line.
	ShowTerms bool
}

// FormatConvergenceLine formats a single "index ratio" report line.
func FormatConvergenceLine(i int, ratio float64) string {
	return fmt.Sprintf("%d %s", i, format.FormatRatio(ratio))
}

// DisplayQuietReport prints the bare report: one line per index with the
// ratio estimate, then the space-separated terms line. This is the stable,
// script-friendly output shape.
func DisplayQuietReport(out io.Writer, est *estimator.Estimation) {
	for k, r := range est.Ratios {
		fmt.Fprintln(out, FormatConvergenceLine(k+2, r))
	}
	fmt.Fprintln(out, est.Terms)
}

// DisplayConvergenceReport prints the decorated convergence report for one
// estimation result.
func DisplayConvergenceReport(out io.Writer, res estimator.Result, opts OutputConfig) {
	est := res.Estimation
	fmt.Fprintf(out, "\n--- Convergence Report (%s%s%s) ---\n",
		ui.ColorPrimary(), res.Name, ui.ColorReset())

	for k, r := range est.Ratios {
		i := k + 2
		if opts.Verbose {
			absErr := r - sequence.GoldenRatio
			if absErr < 0 {
				absErr = -absErr
			}
			fmt.Fprintf(out, "  i=%-4d ratio=%s%s%s  |error|=%.3e\n",
				i, ui.ColorWarning(), format.FormatRatio(r), ui.ColorReset(), absErr)
			continue
		}
		fmt.Fprintf(out, "  i=%-4d ratio=%s%s%s\n",
			i, ui.ColorWarning(), format.FormatRatio(r), ui.ColorReset())
	}

	if est.Overflowed {
		fmt.Fprintf(out, "  %s⚠ run wrapped its integer representation; trailing estimates are garbage%s\n",
			ui.ColorError(), ui.ColorReset())
	}

	if opts.ShowTerms || opts.Verbose {
		fmt.Fprintf(out, "  terms: %s\n", est.Terms)
	}

	fmt.Fprintf(out, "\nφ estimate: %s%s%s (reference %s)\n",
		ui.ColorSuccess(), format.FormatRatio(est.Final), ui.ColorReset(),
		format.FormatRatio(sequence.GoldenRatio))

	if opts.Verbose {
		ind := metrics.Compute(est.Final, len(est.Ratios)+2, res.Duration)
		fmt.Fprintf(out, "matched digits: %d  |error|: %.3e  throughput: %.0f terms/s\n",
			ind.MatchedDigits, ind.AbsError, ind.TermsPerSecond)
	}
}

// WriteReportToFile writes an estimation report to a file.
//
// Parameters:
//   - res: The estimation result to write.
//   - n: The number of generated terms.
//   - config: Output configuration (OutputFile must be set).
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(res estimator.Result, n int, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	est := res.Estimation

	// Write header
	fmt.Fprintf(file, "# Golden Ratio Estimation Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Representation: %s\n", res.Name)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "# Terms: %d\n", n)
	fmt.Fprintf(file, "# Overflowed: %t\n", est.Overflowed)
	fmt.Fprintf(file, "\n")

	// Write the convergence lines and the terms line
	for k, r := range est.Ratios {
		fmt.Fprintln(file, FormatConvergenceLine(k+2, r))
	}
	fmt.Fprintln(file, est.Terms)

	return nil
}

// PrintExecutionConfig displays the current execution configuration to the user.
func PrintExecutionConfig(n int, width string, timeout time.Duration, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Estimating φ from %s%d%s sequence terms with a timeout of %s%s%s.\n",
		ui.ColorInfo(), n, ui.ColorReset(), ui.ColorWarning(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Representation: %s%s%s.\n", ui.ColorSecondary(), width, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single representation vs comparison).
func PrintExecutionMode(estimators []estimator.Estimator, out io.Writer) {
	var modeDesc string
	if len(estimators) > 1 {
		modeDesc = "Parallel comparison of all representations"
	} else {
		modeDesc = fmt.Sprintf("Single estimation with the %s%s%s representation",
			ui.ColorSuccess(), estimators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Estimation ---\n")
}

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/estimator"
	"github.com/agbru/phicalc/internal/format"
	"github.com/agbru/phicalc/internal/ui"
)

// CLIProgressReporter implements estimator.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during estimations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements estimator.ProgressReporter.
var _ estimator.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing estimations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan estimator.ProgressUpdate, numEstimators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEstimators, out)
}

// CLIColorProvider adapts the active UI theme to the apperrors.ColorProvider
// interface used by error reporting.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorError() }
func (CLIColorProvider) Yellow() string { return ui.ColorWarning() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements estimator.ResultPresenter for CLI output.
// It provides formatted, colorized output for estimation results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ estimator.ResultPresenter = CLIResultPresenter{}
	_ estimator.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with
// representation names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []estimator.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	// Find the maximum representation name width for proper alignment
	maxNameLen := 14    // "Representation" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sRepresentation%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-14),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorError(), res.Err, ui.ColorReset())
		case res.Estimation != nil && res.Estimation.Overflowed:
			status = fmt.Sprintf("%s⚠ Overflowed%s", ui.ColorWarning(), ui.ColorReset())
		default:
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorSuccess(), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorPrimary(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorWarning(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final convergence report for one estimation.
func (CLIResultPresenter) PresentResult(result estimator.Result, opts estimator.PresentationOptions, out io.Writer) {
	DisplayConvergenceReport(out, result, OutputConfig{
		Verbose:   opts.Verbose,
		ShowTerms: opts.ShowTerms,
	})
}

// HandleError handles estimation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleEstimationError(err, duration, out, CLIColorProvider{})
}

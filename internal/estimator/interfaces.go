package estimator

import (
	"io"
	"sync"
	"time"
)

// ProgressUpdate is a single progress report from a running estimation.
type ProgressUpdate struct {
	// EstimatorIndex identifies which estimator sent the update.
	EstimatorIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// Result encapsulates the outcome of a single estimation run.
// It serves as the shared domain type between orchestration and presentation layers.
type Result struct {
	// Name is the identifier of the estimator (e.g., "int64").
	Name string
	// Estimation holds the generated ratios and terms. Nil if an error occurred.
	Estimation *Estimation
	// Duration is the time taken to complete the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N         int
	Verbose   bool
	Broken    bool
	ShowTerms bool
}

// ProgressReporter defines the interface for displaying estimation progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinner, TUI
// panel) while this package focuses on coordinating the runs.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from estimators.
	//   - numEstimators: The number of concurrent estimators being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEstimators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEstimators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEstimators int, out io.Writer) {
	f(wg, progressChan, numEstimators, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting estimation results.
// It allows different output formats (CLI, TUI, JSON) without modifying the
// orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []Result, out io.Writer)

	// PresentResult displays the final convergence report for one result.
	PresentResult(result Result, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles estimation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

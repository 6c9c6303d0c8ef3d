package estimator

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/sequence"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking estimation
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// AgreementEpsilon bounds the allowed spread between final estimates of
// non-overflowed runs. The widened divisions are rounded identically across
// representations, so any spread beyond one ulp of φ signals a real defect.
const AgreementEpsilon = 1e-12

// ExecuteEstimations orchestrates the concurrent execution of one or more
// golden ratio estimations.
//
// It manages the lifecycle of estimation goroutines, collects their results,
// and coordinates the display of progress updates. Each estimator works on a
// buffer it owns exclusively, so no synchronization beyond the progress
// channel is needed.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - estimators: A slice of estimators to execute.
//   - n: The number of terms each estimator generates.
//   - opts: The estimation options (capacity, overflow, broken division).
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []Result: A slice containing the results of each estimation.
func ExecuteEstimations(ctx context.Context, estimators []Estimator, n int, opts Options, progressReporter ProgressReporter, out io.Writer) []Result {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]Result, len(estimators))
	progressChan := make(chan ProgressUpdate, len(estimators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(estimators), out)

	for i, est := range estimators {
		idx, estimator := i, est
		g.Go(func() error {
			startTime := time.Now()
			report := func(v float64) {
				select {
				case progressChan <- ProgressUpdate{EstimatorIndex: idx, Value: v}:
				default:
					// Never block the computation on a slow consumer.
				}
			}
			estimation, err := estimator.Estimate(ctx, report, n, opts)
			results[idx] = Result{
				Name: estimator.Name(), Estimation: estimation, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple estimators and
// generates a summary report.
//
// It sorts the results by execution time, cross-checks the final estimates of
// successful non-overflowed runs, and displays a comparative table. Overflowed
// runs are reported as a flagged limitation and excluded from the consistency
// check rather than counted as mismatches.
//
// Parameters:
//   - results: The slice of estimation results to analyze.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The error handler mapping failures to exit codes.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []Result, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *Result
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValid == nil && !results[i].Estimation.Overflowed {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No estimator could complete the run.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	if firstValid == nil {
		// Every successful run wrapped its representation; there is no
		// trustworthy estimate, but the wrapped run is still shown so the
		// demonstration is visible.
		fmt.Fprintf(out, "\nGlobal Status: Failure. All estimates ran past their representation's safe range.\n")
		for i := range results {
			if results[i].Err == nil {
				presenter.PresentResult(results[i], opts, out)
				break
			}
		}
		return apperrors.ExitErrorGeneric
	}

	mismatch := false
	for i := range results {
		res := &results[i]
		if res.Err != nil || res.Estimation.Overflowed {
			continue
		}
		if math.Abs(res.Estimation.Final-firstValid.Estimation.Final) > AgreementEpsilon {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the estimators.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid estimates are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// GetEstimatorsToRun resolves a width selector from configuration into the
// estimators to execute. "all" runs every representation for comparison;
// anything else selects a single representation.
func GetEstimatorsToRun(widthSelector string) ([]Estimator, error) {
	if widthSelector == "all" {
		return AllEstimators(), nil
	}
	w, err := sequence.ParseWidth(widthSelector)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	return []Estimator{NewEstimator(w)}, nil
}

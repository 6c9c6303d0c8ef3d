package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/phicalc/internal/cli"
	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/estimator"
	"github.com/agbru/phicalc/internal/logging"
	"github.com/agbru/phicalc/internal/ui"
)

// lifecycleContext attaches the run timeout and signal handling to a context.
func (a *Application) lifecycleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

func (a *Application) reportConfigError(err error) int {
	fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
	return apperrors.ExitErrorConfig
}

// runEstimate orchestrates the one-shot CLI estimation.
func (a *Application) runEstimate(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycleContext(ctx)
	defer cancel()

	estimatorsToRun, err := estimator.GetEstimatorsToRun(a.Config.Width)
	if err != nil {
		return a.reportConfigError(err)
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config.N, a.Config.Width, a.Config.Timeout, out)
		cli.PrintExecutionMode(estimatorsToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter estimator.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = estimator.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	opts := estimator.Options{
		Capacity:      a.Config.Capacity,
		AllowOverflow: a.Config.AllowOverflow,
		Broken:        a.Config.Broken,
	}

	a.Logger.Debug("starting estimation",
		logging.Int("n", a.Config.N),
		logging.String("width", a.Config.Width),
		logging.Bool("broken", a.Config.Broken))

	results := estimator.ExecuteEstimations(ctx, estimatorsToRun, a.Config.N, opts, progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowTerms:  a.Config.ShowTerms,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []estimator.Result, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Quiet mode: bare report lines only, from the best trustworthy run.
	if outputCfg.Quiet {
		if bestResult == nil {
			var firstErr error
			for i := range results {
				if results[i].Err != nil {
					firstErr = results[i].Err
					break
				}
			}
			return cli.CLIResultPresenter{}.HandleError(firstErr, 0, a.ErrWriter)
		}

		cli.DisplayQuietReport(out, bestResult.Estimation)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := estimator.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Broken:    a.Config.Broken,
		ShowTerms: a.Config.ShowTerms,
	}
	exitCode := estimator.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
				ui.ColorSuccess(), ui.ColorInfo(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// findBestResult picks the fastest successful run that did not wrap its
// representation.
func findBestResult(results []estimator.Result) *estimator.Result {
	var best *estimator.Result
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.Estimation == nil || r.Estimation.Overflowed {
			continue
		}
		if best == nil || r.Duration < best.Duration {
			best = r
		}
	}
	return best
}

func (a *Application) saveResultIfNeeded(res *estimator.Result, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteReportToFile(*res, a.Config.N, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving report: %v\n", err)
		return err
	}
	return nil
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/phicalc/internal/estimator"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress shows a spinner with an aggregated progress bar while
// estimations run. It consumes updates from progressChan until the channel
// is closed, then stops the spinner and signals wg.
//
// Parameters:
//   - wg: A WaitGroup to signal when display is complete.
//   - progressChan: Channel receiving progress updates from estimators.
//   - numEstimators: The number of concurrent estimators being tracked.
//   - out: The writer for spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan estimator.ProgressUpdate, numEstimators int, out io.Writer) {
	defer wg.Done()

	if numEstimators <= 0 {
		// Nothing to track: drain and return so senders never block.
		for range progressChan {
		}
		return
	}

	state := estimator.NewProgressState(numEstimators)
	spin := newSpinner(spinner.WithWriter(out))
	spin.UpdateSuffix(fmt.Sprintf(" Estimating... [%s] 0.00%%", progressBar(0, ProgressBarWidth)))
	spin.Start()
	defer spin.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	refresh := func() {
		avg := state.CalculateAverage()
		spin.UpdateSuffix(fmt.Sprintf(" Estimating... [%s] %.2f%%",
			progressBar(avg, ProgressBarWidth), avg*100))
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				refresh()
				return
			}
			state.Update(update.EstimatorIndex, update.Value)
		case <-ticker.C:
			refresh()
		}
	}
}

package estimator

// ProgressState encapsulates the aggregated progress of concurrent
// estimations. It maintains the individual progress of each estimator and
// computes the average, providing a consolidated progress view when multiple
// representations run in parallel.
type ProgressState struct {
	progresses    []float64
	numEstimators int
}

// NewProgressState creates and initializes a new ProgressState for the given
// number of estimators. Returns nil if numEstimators <= 0.
func NewProgressState(numEstimators int) *ProgressState {
	if numEstimators <= 0 {
		return nil
	}
	return &ProgressState{
		progresses:    make([]float64, numEstimators),
		numEstimators: numEstimators,
	}
}

// Update records a new progress value for a specific estimator. Updates are
// only applied for valid estimator indices.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked
// estimators, for display as a single consolidated progress bar.
func (ps *ProgressState) CalculateAverage() float64 {
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numEstimators)
}

// DrainChannel reads all updates from the channel without processing.
// Use this when updates should be discarded.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}

// Package estimator coordinates the concurrent execution of golden ratio
// estimations across integer representations and cross-checks their results.
//
// Each estimator owns a private sequence buffer for the duration of a run, so
// concurrent estimations share no mutable state. Progress updates flow through
// a buffered channel to a ProgressReporter, decoupling the computation from
// the presentation layer (CLI spinner, TUI, or nothing in quiet mode).
package estimator

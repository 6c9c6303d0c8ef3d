// Package logging provides a small structured logging facade over zerolog.
//
// The Logger interface keeps the rest of the application decoupled from the
// concrete backend: production code uses the zerolog adapter, while tests or
// embedding callers may plug in the standard-library adapter or their own
// implementation.
package logging

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color codes for error reporting without
// coupling this package to a specific UI theme implementation.
type ColorProvider interface {
	// Red returns the escape code for error text.
	Red() string
	// Yellow returns the escape code for warning text.
	Yellow() string
	// Reset returns the escape code that clears formatting.
	Reset() string
}

// HandleEstimationError reports an estimation failure to the user and maps it
// to the appropriate process exit code.
//
// Context cancellation is distinguished from deadline expiry so that an
// interrupted run (SIGINT) exits with 130 while a timeout exits with 2.
//
// Parameters:
//   - err: The error to handle (may be nil).
//   - elapsed: How long the estimation ran before failing.
//   - out: The writer for the error report.
//   - colors: The color provider for the report.
//
// Returns:
//   - int: The exit code corresponding to the error class.
func HandleEstimationError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		timeout := WrapError(err, "%v", TimeoutError{Operation: "estimation", Limit: elapsed})
		fmt.Fprintf(out, "\n%sTimeout:%s %v.\n",
			colors.Red(), colors.Reset(), timeout)
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "\n%sCanceled:%s estimation interrupted after %s.\n",
			colors.Yellow(), colors.Reset(), elapsed)
		return ExitErrorCanceled
	}

	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(out, "\n%sConfiguration error:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "\n%sError:%s %v\n", colors.Red(), colors.Reset(), err)
	return ExitErrorGeneric
}

package estimator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/phicalc/internal/sequence"
)

// tracerName identifies this package's spans to the OpenTelemetry provider.
const tracerName = "github.com/agbru/phicalc/internal/estimator"

// Options carries the tunable parameters of a single estimation run.
type Options struct {
	// Capacity is the sequence buffer capacity (0 means sequence.DefaultCapacity).
	Capacity int
	// AllowOverflow lets fixed-width runs continue past their last safe index
	// for the wraparound demonstration.
	AllowOverflow bool
	// Broken selects the deliberately truncated integer division for the
	// convergence report, contrasting it with the widened division.
	Broken bool
}

// Estimation holds the output of one run: the per-index ratio estimates and
// the generated terms.
type Estimation struct {
	// Ratios holds the estimate for each index i in 2..n-1; Ratios[k] is the
	// ratio at index k+2.
	Ratios []float64
	// Final is the last estimate, the run's best approximation of φ.
	Final float64
	// Terms is the space-separated list of generated terms.
	Terms string
	// Overflowed reports whether the underlying buffer wrapped.
	Overflowed bool
}

// RatioAt returns the estimate at sequence index i.
func (e *Estimation) RatioAt(i int) (float64, error) {
	k := i - 2
	if k < 0 || k >= len(e.Ratios) {
		return 0, sequence.IndexError{Index: i, Len: len(e.Ratios) + 2}
	}
	return e.Ratios[k], nil
}

// Estimator produces a golden ratio estimation for a given representation.
type Estimator interface {
	// Name returns the human-readable identifier of the estimator.
	Name() string
	// Width returns the integer representation the estimator runs on.
	Width() sequence.Width
	// Estimate generates n terms and derives the per-index ratio estimates.
	// The report callback receives normalized progress in [0, 1].
	Estimate(ctx context.Context, report func(float64), n int, opts Options) (*Estimation, error)
}

// widthEstimator is the concrete estimator for one integer representation.
type widthEstimator struct {
	width sequence.Width
}

// NewEstimator returns the estimator for the given representation.
func NewEstimator(w sequence.Width) Estimator {
	return &widthEstimator{width: w}
}

// AllEstimators returns one estimator per supported representation, narrowest
// first. Running all of them cross-validates the ratio estimates.
func AllEstimators() []Estimator {
	return []Estimator{
		NewEstimator(sequence.Width32),
		NewEstimator(sequence.Width64),
		NewEstimator(sequence.WidthBig),
	}
}

// Name returns the representation name.
func (e *widthEstimator) Name() string { return e.width.String() }

// Width returns the representation the estimator runs on.
func (e *widthEstimator) Width() sequence.Width { return e.width }

// Estimate generates the sequence and computes the ratio at every defined
// index. The context is checked once per term; a run is at most
// sequence.MaxCapacity terms, so cancellation latency is a single addition.
func (e *widthEstimator) Estimate(ctx context.Context, report func(float64), n int, opts Options) (*Estimation, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "estimator.Estimate",
		trace.WithAttributes(
			attribute.String("phicalc.width", e.width.String()),
			attribute.Int("phicalc.n", n),
		))
	defer span.End()

	seqOpts := make([]sequence.Option, 0, 2)
	if opts.Capacity > 0 {
		seqOpts = append(seqOpts, sequence.WithCapacity(opts.Capacity))
	}
	if opts.AllowOverflow {
		seqOpts = append(seqOpts, sequence.AllowOverflow())
	}

	s := sequence.New(e.width, seqOpts...)
	if err := s.Generate(n); err != nil {
		span.RecordError(err)
		return nil, err
	}

	est := &Estimation{
		Ratios:     make([]float64, 0, maxInt(n-2, 0)),
		Terms:      s.Terms(),
		Overflowed: s.Overflowed(),
	}

	for i := 2; i < n; i++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("estimation canceled at index %d: %w", i, err)
		}

		var (
			r   float64
			err error
		)
		if opts.Broken {
			r, err = s.TruncatedRatioAt(i)
		} else {
			r, err = s.RatioAt(i)
		}
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		est.Ratios = append(est.Ratios, r)

		if report != nil {
			report(float64(i+1) / float64(n))
		}
	}

	if len(est.Ratios) > 0 {
		est.Final = est.Ratios[len(est.Ratios)-1]
	}
	span.SetAttributes(attribute.Float64("phicalc.final_ratio", est.Final))
	return est, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

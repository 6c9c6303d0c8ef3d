package sequence

import (
	"math/big"
	"strconv"
	"strings"
)

// Sequence is the common interface over the fixed-width and arbitrary-precision
// buffer implementations. A Sequence is single-owner state: it is created for
// one estimation run, populated by Generate, consumed by the ratio operations
// and then discarded.
type Sequence interface {
	// Width returns the integer representation backing the buffer.
	Width() Width
	// Len returns the number of generated terms.
	Len() int
	// Cap returns the fixed buffer capacity.
	Cap() int
	// Generate populates the first n terms. It fails with CapacityError when
	// n exceeds the capacity, and with OverflowError when a fixed-width
	// representation would wrap before index n-1 (unless overflow was
	// explicitly allowed at construction).
	Generate(n int) error
	// RatioAt returns term[i]/term[i-1] as a float64, with both operands
	// widened before the division. Fails with IndexError outside 2..Len()-1.
	RatioAt(i int) (float64, error)
	// TruncatedRatioAt returns the floored integer quotient term[i]/term[i-1]
	// converted to float64 afterward. Same index domain as RatioAt.
	TruncatedRatioAt(i int) (float64, error)
	// Overflowed reports whether generation ran past the representation's
	// last safe index (only possible with AllowOverflow).
	Overflowed() bool
	// Terms returns the generated terms as a space-separated string.
	Terms() string
}

// Option configures a sequence buffer at construction.
type Option func(*settings)

type settings struct {
	capacity      int
	allowOverflow bool
}

// WithCapacity sets the buffer capacity (default DefaultCapacity).
func WithCapacity(n int) Option {
	return func(s *settings) { s.capacity = n }
}

// AllowOverflow opts in to generating past the last safe index of a
// fixed-width representation. The wrapped terms are preserved as-is and the
// buffer reports Overflowed() = true; this exists to demonstrate the failure
// mode, never to hide it.
func AllowOverflow() Option {
	return func(s *settings) { s.allowOverflow = true }
}

// New creates an empty sequence buffer for the given width.
func New(w Width, opts ...Option) Sequence {
	cfg := settings{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	if w == WidthBig {
		return &BigSequence{capacity: cfg.capacity}
	}
	return &FixedSequence{width: w, capacity: cfg.capacity, allowOverflow: cfg.allowOverflow}
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixed-width implementation
// ─────────────────────────────────────────────────────────────────────────────

// FixedSequence stores terms in an int64 slice while applying the arithmetic
// of the selected fixed width. For Width32 each addition is evaluated in
// int32 so that wraparound matches a genuine 32-bit build bit-for-bit.
type FixedSequence struct {
	width         Width
	capacity      int
	terms         []int64
	allowOverflow bool
	overflowed    bool
}

// Width returns the fixed integer representation of the buffer.
func (s *FixedSequence) Width() Width { return s.width }

// Len returns the number of generated terms.
func (s *FixedSequence) Len() int { return len(s.terms) }

// Cap returns the fixed buffer capacity.
func (s *FixedSequence) Cap() int { return s.capacity }

// Overflowed reports whether generation wrapped the representation.
func (s *FixedSequence) Overflowed() bool { return s.overflowed }

// Generate populates the first n terms of the sequence.
func (s *FixedSequence) Generate(n int) error {
	if n < 0 || n > s.capacity {
		return CapacityError{Requested: n, Capacity: s.capacity}
	}
	if maxSafe := s.width.MaxSafeIndex(); n-1 > maxSafe && !s.allowOverflow {
		return OverflowError{Width: s.width, MaxSafeIndex: maxSafe, Requested: n}
	}

	s.terms = make([]int64, 0, n)
	s.overflowed = false
	for i := 0; i < n; i++ {
		s.terms = append(s.terms, s.next(i))
		if i > s.width.MaxSafeIndex() {
			s.overflowed = true
		}
	}
	return nil
}

// next evaluates term i in the buffer's fixed-width arithmetic.
func (s *FixedSequence) next(i int) int64 {
	switch i {
	case 0:
		return 0
	case 1:
		return 1
	}
	if s.width == Width32 {
		// Evaluate in int32: the conversion is the whole point, wraparound
		// must match a native 32-bit representation.
		return int64(int32(s.terms[i-1]) + int32(s.terms[i-2]))
	}
	return s.terms[i-1] + s.terms[i-2]
}

// RatioAt returns term[i]/term[i-1] with both operands widened to float64
// before the division instruction executes.
func (s *FixedSequence) RatioAt(i int) (float64, error) {
	if err := s.checkRatioIndex(i); err != nil {
		return 0, err
	}
	numerator := float64(s.terms[i])
	denominator := float64(s.terms[i-1])
	return numerator / denominator, nil
}

// TruncatedRatioAt divides on the integer representation and converts
// afterward. The quotient of consecutive Fibonacci terms is always 1 (or 2 at
// i=3), so the result is useless as a φ estimate. That is the lesson.
func (s *FixedSequence) TruncatedRatioAt(i int) (float64, error) {
	if err := s.checkRatioIndex(i); err != nil {
		return 0, err
	}
	quotient := s.terms[i] / s.terms[i-1]
	return float64(quotient), nil
}

func (s *FixedSequence) checkRatioIndex(i int) error {
	if i < 2 || i >= len(s.terms) {
		return IndexError{Index: i, Len: len(s.terms)}
	}
	if s.terms[i-1] == 0 {
		// Only reachable on a wrapped buffer; a zero denominator would turn
		// the estimate into ±Inf without explanation.
		return IndexError{Index: i, Len: len(s.terms)}
	}
	return nil
}

// Terms returns the generated terms space-separated.
func (s *FixedSequence) Terms() string {
	var b strings.Builder
	for i, t := range s.terms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(t, 10))
	}
	return b.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// Arbitrary-precision implementation
// ─────────────────────────────────────────────────────────────────────────────

// BigSequence stores terms as *big.Int. It never overflows, so AllowOverflow
// is meaningless for it and Overflowed always reports false.
type BigSequence struct {
	capacity int
	terms    []*big.Int
}

// Width returns WidthBig.
func (s *BigSequence) Width() Width { return WidthBig }

// Len returns the number of generated terms.
func (s *BigSequence) Len() int { return len(s.terms) }

// Cap returns the fixed buffer capacity.
func (s *BigSequence) Cap() int { return s.capacity }

// Overflowed always reports false for arbitrary precision.
func (s *BigSequence) Overflowed() bool { return false }

// Generate populates the first n terms of the sequence.
func (s *BigSequence) Generate(n int) error {
	if n < 0 || n > s.capacity {
		return CapacityError{Requested: n, Capacity: s.capacity}
	}

	s.terms = make([]*big.Int, 0, n)
	for i := 0; i < n; i++ {
		switch i {
		case 0:
			s.terms = append(s.terms, big.NewInt(0))
		case 1:
			s.terms = append(s.terms, big.NewInt(1))
		default:
			s.terms = append(s.terms, new(big.Int).Add(s.terms[i-1], s.terms[i-2]))
		}
	}
	return nil
}

// RatioAt widens both terms to big.Float before dividing, then rounds the
// quotient to float64. The receiver precision is pinned to the float64
// mantissa so the quotient is rounded exactly once, matching the fixed-width
// implementations bit-for-bit while both terms fit their representation.
func (s *BigSequence) RatioAt(i int) (float64, error) {
	if i < 2 || i >= len(s.terms) {
		return 0, IndexError{Index: i, Len: len(s.terms)}
	}
	numerator := new(big.Float).SetInt(s.terms[i])
	denominator := new(big.Float).SetInt(s.terms[i-1])
	ratio, _ := new(big.Float).SetPrec(53).Quo(numerator, denominator).Float64()
	return ratio, nil
}

// TruncatedRatioAt performs the integer quotient first, mirroring the
// fixed-width broken variant on the arbitrary-precision representation.
func (s *BigSequence) TruncatedRatioAt(i int) (float64, error) {
	if i < 2 || i >= len(s.terms) {
		return 0, IndexError{Index: i, Len: len(s.terms)}
	}
	quotient := new(big.Int).Quo(s.terms[i], s.terms[i-1])
	ratio, _ := new(big.Float).SetInt(quotient).Float64()
	return ratio, nil
}

// Terms returns the generated terms space-separated.
func (s *BigSequence) Terms() string {
	var b strings.Builder
	for i, t := range s.terms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

package sequence

// ─────────────────────────────────────────────────────────────────────────────
// Convergence Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// GoldenRatio is φ = (1 + √5) / 2, the limit of the ratio of consecutive
	// Fibonacci terms, to full float64 precision.
	GoldenRatio = 1.6180339887498949

	// DefaultCapacity is the default sequence buffer capacity. Fifty terms are
	// enough to exhaust float64 convergence: |F(i+1)/F(i) − φ| shrinks by a
	// factor of φ² ≈ 2.618 per index and falls below one ulp around i = 40.
	DefaultCapacity = 50

	// MaxCapacity bounds the buffer capacity accepted from configuration.
	// Generation is O(n) time and space; the bound keeps arbitrary-precision
	// runs trivially cheap while leaving room well past fixed-width overflow.
	MaxCapacity = 1024
)

// ─────────────────────────────────────────────────────────────────────────────
// Fixed-Width Overflow Limits
// ─────────────────────────────────────────────────────────────────────────────
//
// These are the largest indices whose term still fits the signed fixed-width
// representation. One index further, the addition wraps and the buffer holds
// garbage (typically a negative term).

const (
	// MaxSafeIndex32 is the largest i with F(i) representable as int32.
	// F(46) = 1,836,311,903 fits; F(47) = 2,971,215,073 exceeds MaxInt32.
	MaxSafeIndex32 = 46

	// MaxSafeIndex64 is the largest i with F(i) representable as int64.
	// F(92) = 7,540,113,804,746,346,429 fits; F(93) exceeds MaxInt64.
	MaxSafeIndex64 = 92
)

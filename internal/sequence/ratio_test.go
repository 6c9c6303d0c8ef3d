package sequence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generated(t *testing.T, w Width, n int, opts ...Option) Sequence {
	t.Helper()
	s := New(w, opts...)
	require.NoError(t, s.Generate(n))
	return s
}

func TestRatioAt_ConcreteScenario(t *testing.T) {
	t.Parallel()

	// The reference scenario: generate(10), ratio_at(9) = 34/21.
	for _, w := range []Width{Width32, Width64, WidthBig} {
		w := w
		t.Run(w.String(), func(t *testing.T) {
			t.Parallel()
			s := generated(t, w, 10)

			r, err := s.RatioAt(9)
			require.NoError(t, err)
			assert.InDelta(t, 34.0/21.0, r, 1e-15)
			assert.InDelta(t, 1.619047619, r, 1e-9)
		})
	}
}

func TestRatioAt_IndexOutOfRange(t *testing.T) {
	t.Parallel()

	s := generated(t, Width64, 10)

	tests := []struct {
		name  string
		index int
	}{
		{"index 0", 0},
		{"index 1 has no predecessor ratio", 1},
		{"index n", 10},
		{"negative index", -3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := s.RatioAt(tt.index)
			var idxErr IndexError
			require.ErrorAs(t, err, &idxErr)
			assert.Equal(t, tt.index, idxErr.Index)

			_, err = s.TruncatedRatioAt(tt.index)
			require.ErrorAs(t, err, &idxErr)
		})
	}
}

func TestRatioAt_ConvergesTowardGoldenRatio(t *testing.T) {
	t.Parallel()

	s := generated(t, Width64, 50)

	// The error |ratio(i) − φ| shrinks roughly by φ² per index and must be
	// decreasing once past the small-index oscillation. The check stops at
	// i=30 where the true error is still well above one float64 ulp.
	prevErr := math.Inf(1)
	for i := 3; i <= 30; i++ {
		r, err := s.RatioAt(i)
		require.NoError(t, err)

		absErr := math.Abs(r - GoldenRatio)
		assert.LessOrEqual(t, absErr, prevErr, "convergence must not regress at i=%d", i)
		prevErr = absErr
	}

	final, err := s.RatioAt(s.Len() - 1)
	require.NoError(t, err)
	assert.InDelta(t, GoldenRatio, final, 1e-14)
}

func TestRatioAt_AlternatesAroundGoldenRatio(t *testing.T) {
	t.Parallel()

	// Consecutive estimates straddle φ: ratio(2i) < φ < ratio(2i+1).
	s := generated(t, WidthBig, 30)
	for i := 2; i < 20; i++ {
		r, err := s.RatioAt(i)
		require.NoError(t, err)
		if i%2 == 0 {
			assert.Less(t, r, GoldenRatio, "even index %d", i)
		} else {
			assert.Greater(t, r, GoldenRatio, "odd index %d", i)
		}
	}
}

func TestTruncatedRatioAt_FloorsTheQuotient(t *testing.T) {
	t.Parallel()

	// The broken variant divides before widening: the integer quotient of
	// consecutive terms is 2 at i=3 (2/1) and 1 everywhere after.
	for _, w := range []Width{Width32, Width64, WidthBig} {
		w := w
		t.Run(w.String(), func(t *testing.T) {
			t.Parallel()
			s := generated(t, w, 20)

			r3, err := s.TruncatedRatioAt(3)
			require.NoError(t, err)
			assert.Equal(t, 2.0, r3)

			for i := 4; i < 20; i++ {
				r, err := s.TruncatedRatioAt(i)
				require.NoError(t, err)
				assert.Equal(t, 1.0, r, "floored quotient at i=%d", i)
			}
		})
	}
}

func TestRatioAt_BrokenVersusFixedContrast(t *testing.T) {
	t.Parallel()

	// The two operations must stay distinct: at i=9 the fixed division gives
	// ≈1.619 while the truncated one gives exactly 1.
	s := generated(t, Width64, 10)

	fixed, err := s.RatioAt(9)
	require.NoError(t, err)
	broken, err := s.TruncatedRatioAt(9)
	require.NoError(t, err)

	assert.InDelta(t, 1.619047619, fixed, 1e-9)
	assert.Equal(t, 1.0, broken)
	assert.NotEqual(t, fixed, broken)
}

func TestRatioAt_WrappedBufferStaysDefined(t *testing.T) {
	t.Parallel()

	// Past the int32 overflow point the ratios are garbage but must still be
	// computed from the stored (wrapped) terms rather than crashing, as long
	// as no denominator is zero.
	s := generated(t, Width32, 48, AllowOverflow())

	r, err := s.RatioAt(47)
	require.NoError(t, err)
	assert.Less(t, r, 0.0, "wrapped F(47) is negative, so the ratio must be too")
}

package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agbru/phicalc/internal/sequence"
)

func TestCompute_ExactEstimate(t *testing.T) {
	t.Parallel()

	ind := Compute(sequence.GoldenRatio, 50, time.Millisecond)

	assert.Equal(t, 0.0, ind.AbsError)
	assert.Equal(t, 16, ind.MatchedDigits)
	assert.InDelta(t, 50_000, ind.TermsPerSecond, 1)
}

func TestCompute_EarlyEstimate(t *testing.T) {
	t.Parallel()

	// ratio_at(9) = 34/21 agrees with φ on two decimal digits.
	ind := Compute(34.0/21.0, 10, time.Millisecond)

	assert.InDelta(t, 0.001, ind.AbsError, 0.001)
	assert.GreaterOrEqual(t, ind.MatchedDigits, 2)
	assert.Less(t, ind.MatchedDigits, 5)
}

func TestCompute_GarbageEstimate(t *testing.T) {
	t.Parallel()

	// A wrapped int32 run lands far from φ; no digits match.
	ind := Compute(-0.44, 48, time.Millisecond)

	assert.Greater(t, ind.AbsError, 1.0)
	assert.Equal(t, 0, ind.MatchedDigits)
}

func TestCompute_ZeroElapsed(t *testing.T) {
	t.Parallel()

	ind := Compute(1.6, 10, 0)
	assert.Equal(t, 0.0, ind.TermsPerSecond)
}

func TestSampleMemory(t *testing.T) {
	t.Parallel()

	snap := SampleMemory()
	assert.Greater(t, snap.HeapAlloc, uint64(0))
	assert.GreaterOrEqual(t, snap.NumGoroutine, 1)
}

// Package metrics derives post-run indicators from an estimation and samples
// process memory for the dashboard panels.
package metrics

import (
	"math"
	"runtime"
	"time"

	"github.com/agbru/phicalc/internal/sequence"
)

// Indicators summarizes the quality and cost of a completed estimation run.
type Indicators struct {
	// Final is the last ratio estimate of the run.
	Final float64
	// AbsError is |Final − φ|.
	AbsError float64
	// MatchedDigits is the number of decimal digits on which Final agrees
	// with φ (0 when the estimate is garbage, e.g. after overflow).
	MatchedDigits int
	// TermsPerSecond is the generation throughput of the run.
	TermsPerSecond float64
}

// Compute derives the indicators for a final estimate over n terms.
func Compute(final float64, n int, elapsed time.Duration) Indicators {
	ind := Indicators{
		Final:    final,
		AbsError: math.Abs(final - sequence.GoldenRatio),
	}

	switch {
	case ind.AbsError == 0:
		// Full float64 agreement: every printed digit matches.
		ind.MatchedDigits = 16
	case ind.AbsError < 1:
		ind.MatchedDigits = int(-math.Log10(ind.AbsError))
		if ind.MatchedDigits > 16 {
			ind.MatchedDigits = 16
		}
	}

	if elapsed > 0 {
		ind.TermsPerSecond = float64(n) / elapsed.Seconds()
	}
	return ind
}

// MemorySnapshot holds a point-in-time memory reading of this process.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the application
	HeapSys      uint64 // bytes obtained from the OS for the heap
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	NumGoroutine int    // live goroutines
}

// SampleMemory reads current runtime memory statistics.
func SampleMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

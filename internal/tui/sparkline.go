package tui

import "math"

// sparklineChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts values (0..100) into a sparkline string using
// Unicode blocks.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		idx := int(v / 100.0 * 7.0)
		if idx > 7 {
			idx = 7
		}
		runes[i] = sparklineChars[idx]
	}
	return string(runes)
}

// ErrorSparkline renders the convergence error trail on a log scale.
// Each value is |estimate − φ|; smaller errors map to lower blocks, so a
// converging run draws a descending staircase. Zero errors render as the
// lowest block.
func ErrorSparkline(absErrors []float64) string {
	if len(absErrors) == 0 {
		return ""
	}

	// Map |error| to 0..100 with 1.0 at the top and 1e-16 at the bottom.
	scaled := make([]float64, len(absErrors))
	for i, e := range absErrors {
		if e <= 0 {
			scaled[i] = 0
			continue
		}
		// -log10 of the error spans roughly 0..16 over a full run.
		mag := -math.Log10(e)
		if mag < 0 {
			mag = 0
		}
		if mag > 16 {
			mag = 16
		}
		scaled[i] = (16 - mag) / 16 * 100
	}
	return RenderSparkline(scaled)
}

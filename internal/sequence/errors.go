package sequence

import "fmt"

// CapacityError reports a Generate request exceeding the buffer capacity.
// Generation fails up front rather than producing a partially filled buffer.
type CapacityError struct {
	// Requested is the number of terms asked for.
	Requested int
	// Capacity is the fixed buffer capacity.
	Capacity int
}

// Error returns a formatted message describing the capacity violation.
func (e CapacityError) Error() string {
	return fmt.Sprintf("requested %d terms exceeds buffer capacity %d", e.Requested, e.Capacity)
}

// IndexError reports a ratio request for an undefined index. Ratios are
// defined for 2 <= i < Len() only.
type IndexError struct {
	// Index is the offending index.
	Index int
	// Len is the number of generated terms.
	Len int
}

// Error returns a formatted message describing the index violation.
func (e IndexError) Error() string {
	return fmt.Sprintf("ratio undefined at index %d (valid range 2..%d)", e.Index, e.Len-1)
}

// OverflowError reports a Generate request that would push a fixed-width
// representation past its last safe index. The caller must either use a wider
// representation or opt in to the wraparound demonstration via AllowOverflow.
type OverflowError struct {
	// Width is the fixed-width representation that would overflow.
	Width Width
	// MaxSafeIndex is the last index whose term fits the representation.
	MaxSafeIndex int
	// Requested is the number of terms asked for.
	Requested int
}

// Error returns a formatted message describing the overflow condition.
func (e OverflowError) Error() string {
	return fmt.Sprintf("%s overflows past index %d (requested %d terms); use a wider representation or AllowOverflow",
		e.Width, e.MaxSafeIndex, e.Requested)
}

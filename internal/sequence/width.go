package sequence

import "fmt"

// Width selects the integer representation backing a sequence buffer.
type Width int

const (
	// Width32 stores terms with int32 semantics. Overflows at index 47.
	Width32 Width = iota
	// Width64 stores terms with int64 semantics. Overflows at index 93.
	Width64
	// WidthBig stores terms as arbitrary-precision integers. Never overflows.
	WidthBig
)

// String returns the canonical name of the width ("int32", "int64", "big").
func (w Width) String() string {
	switch w {
	case Width32:
		return "int32"
	case Width64:
		return "int64"
	case WidthBig:
		return "big"
	}
	return fmt.Sprintf("Width(%d)", int(w))
}

// MaxSafeIndex returns the largest index whose term fits the representation,
// or -1 when the representation never overflows.
func (w Width) MaxSafeIndex() int {
	switch w {
	case Width32:
		return MaxSafeIndex32
	case Width64:
		return MaxSafeIndex64
	}
	return -1
}

// ParseWidth converts a configuration string into a Width.
// Accepted values: "32", "int32", "64", "int64", "big".
func ParseWidth(s string) (Width, error) {
	switch s {
	case "32", "int32":
		return Width32, nil
	case "64", "int64":
		return Width64, nil
	case "big":
		return WidthBig, nil
	}
	return 0, fmt.Errorf("unknown width %q (expected int32, int64 or big)", s)
}

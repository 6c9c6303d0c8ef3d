// Package sequence implements the Fibonacci sequence buffer and the golden
// ratio estimation derived from consecutive terms.
//
// A Sequence is a fixed-capacity, ordered buffer of integer terms satisfying
// term[0] = 0, term[1] = 1 and term[i] = term[i-1] + term[i-2]. Each buffer is
// owned by a single estimation run; buffers are recreated per run and never
// shared between concurrent callers.
//
// Two ratio operations are exposed deliberately:
//
//   - RatioAt performs the division on operands explicitly widened to a
//     floating-point representation BEFORE the division executes, and
//     converges toward the golden ratio φ ≈ 1.6180339887498949.
//   - TruncatedRatioAt performs the division on the native integer
//     representation and converts the quotient afterward, silently flooring
//     the result. It reproduces the classic implicit-conversion bug and is
//     kept as a separate, named operation so the broken and fixed variants
//     can be contrasted directly.
package sequence

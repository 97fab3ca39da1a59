// Package util contains internal helpers (numeric ranges, ordered search).
//
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

// Number is the set of numeric types Range can step over.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Range returns start, start+step, start+2*step, ... up to but excluding end.
// A negative step walks downwards. If step points away from end the result is empty.
// Values are computed as start+i*step (not by accumulation) so float ranges
// do not drift.
//
// A zero step is a programming error and panics.
func Range[T Number](start, end, step T) []T {
	var zero T
	if step == zero {
		panic("util.Range: step must be non-zero")
	}
	var out []T
	for i := 0; ; i++ {
		v := start + T(i)*step
		if step > zero && v >= end || step < zero && v <= end {
			break
		}
		// unsigned wrap-around guard: a "negative" unsigned step overflows
		if i > 0 && (step > zero) != (v > out[i-1]) {
			break
		}
		out = append(out, v)
	}
	return out
}

package util

import "cmp"

// FindLastLE returns the index of the last element of xs that is <= x.
// xs must be sorted in nondecreasing order. Returns -1 when xs is empty
// or x is below xs[0].
//
// O(log n) binary search.
func FindLastLE[T cmp.Ordered](xs []T, x T) int {
	lo, hi := 0, len(xs) // invariant: xs[:lo] <= x, xs[hi:] > x
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if xs[mid] <= x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}

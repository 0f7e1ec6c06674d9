package spos

import "golang.org/x/exp/constraints"

// clamp saturates v to [lo, hi], grounded on oy3o-codec/util.go's generic
// helper style (Roundup[T constraints.Integer]).
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// bitsForCount returns ceil(log2(n)) for n >= 1, the number of bits
// needed to represent n distinct unsigned codes (0..n-1).
func bitsForCount(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	for (1 << bits) < n {
		bits++
	}
	return bits
}

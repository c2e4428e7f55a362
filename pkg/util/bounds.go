package util

import "golang.org/x/exp/constraints"

// InRange reports whether lo <= v < hi.
func InRange[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v < hi
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func AbsMax[T constraints.Float](values []T) T {
	var m T
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

package mathhelp

import "golang.org/x/exp/constraints"

func Pow2[T constraints.Unsigned](n T) T {
	return 1 << n
}

// Pow4 returns 4^n, the number of points on a curve of degree n.
func Pow4[T constraints.Unsigned](n T) T {
	return 1 << (2 * n)
}

func CeilDiv[T constraints.Unsigned](a, b T) T {
	return (a + b - 1) / b
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

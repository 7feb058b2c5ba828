package systems

import "math"

// clampf clamps x to [lo, hi].
func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// absf returns |x|.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// sqrtf is a float32 sqrt.
func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LerpFactor converts a per-second smoothing rate into a frame blend factor.
func LerpFactor(rate, dt float64) float64 {
	if rate <= 0 {
		return 1
	}
	return Clamp(1-math.Exp(-rate*dt), 0, 1)
}

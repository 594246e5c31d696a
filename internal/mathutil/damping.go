// Package mathutil provides the scalar and rotation helpers shared by the
// inertialization decay kernel.
package mathutil

import "math"

// HalfLifeToDamping converts a half-life in seconds into the damping
// coefficient y = (4·ln2) / (halfLife + eps).
//
// halfLife is expected to be non-negative. eps keeps the result finite when
// halfLife is zero, which yields a very large damping (an almost instant
// snap) rather than a division by zero.
func HalfLifeToDamping(halfLife, eps float64) float64 {
	return halfLifeDampingScale / (halfLife + eps)
}

// FastNegExp approximates e^(-x) with a third-order rational function.
//
// The approximation is only meant for x ≥ 0, which is always the case for
// the damping·deltaTime products computed by the decay kernel. It stays in
// (0, 1] and decreases monotonically on that range. Do not use it as a
// general-purpose exponential.
func FastNegExp(x float64) float64 {
	return 1.0 / (1.0 + negExpCoeff1*x + negExpCoeff2*x*x + negExpCoeff3*x*x*x)
}

// ExactNegExp returns e^(-x). It is the drop-in replacement for FastNegExp
// when accuracy matters more than speed.
func ExactNegExp(x float64) float64 {
	return math.Exp(-x)
}

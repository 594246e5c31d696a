package mathutil

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the identity rotation.
var Identity = quat.Number{Real: 1}

// Log maps a unit rotation to its rotation vector (axis × half-angle).
//
// When the vector part is shorter than eps the vector part itself is returned,
// which is the first-order approximation and avoids a 0/0 division.
func Log(q quat.Number, eps float64) r3.Vec {
	v := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	length := r3.Norm(v)
	if length < eps {
		return v
	}

	halfAngle := math.Acos(clamp(q.Real, -1, 1))
	return r3.Scale(halfAngle/length, v)
}

// Exp is the inverse of Log: it maps a rotation vector (axis × half-angle)
// back to a unit rotation.
//
// For vectors shorter than eps the result is the normalized rotation
// (v.X, v.Y, v.Z, 1), again a first-order approximation.
func Exp(v r3.Vec, eps float64) quat.Number {
	halfAngle := r3.Norm(v)
	if halfAngle < eps {
		return Normalize(quat.Number{Real: 1, Imag: v.X, Jmag: v.Y, Kmag: v.Z})
	}

	c := math.Cos(halfAngle)
	s := math.Sin(halfAngle) / halfAngle
	return quat.Number{Real: c, Imag: s * v.X, Jmag: s * v.Y, Kmag: s * v.Z}
}

// ToScaledAngleAxis returns the rotation vector of q scaled to the full angle.
func ToScaledAngleAxis(q quat.Number, eps float64) r3.Vec {
	return r3.Scale(scaledAngleAxisFactor, Log(q, eps))
}

// FromScaledAngleAxis is the inverse of ToScaledAngleAxis.
func FromScaledAngleAxis(v r3.Vec, eps float64) quat.Number {
	return Exp(r3.Scale(halfFactor, v), eps)
}

// Abs returns the representative of q with a non-negative real part, so that
// compositions of deltas always follow the shorter arc.
func Abs(q quat.Number) quat.Number {
	if q.Real < 0 {
		return quat.Scale(-1, q)
	}
	return q
}

// Normalize scales q to unit length. Zero, infinite and NaN inputs yield the
// identity rotation instead of propagating non-finite values.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return Identity
	}
	return quat.Scale(1/n, q)
}

// ShortestDelta returns abs(normalize(q)), the canonical form stored for
// rotation offsets.
func ShortestDelta(q quat.Number) quat.Number {
	return Abs(Normalize(q))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

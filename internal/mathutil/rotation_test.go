package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-inertialization/internal/testutil"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// TestLogExp_RoundTrip tests exp(log(q)) == q for canonical unit rotations.
func TestLogExp_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		axis  r3.Vec
		angle float64
	}{
		{"Small X rotation", r3.Vec{X: 1}, 0.01},
		{"Quarter turn Y", r3.Vec{Y: 1}, math.Pi / 2},
		{"Oblique axis", r3.Vec{X: 1, Y: 2, Z: 3}, 1.2},
		{"Nearly half turn", r3.Vec{X: -1, Z: 1}, math.Pi - 1e-3},
		{"Negative angle", r3.Vec{Z: 1}, -0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Abs(testutil.AxisAngle(tt.axis, tt.angle))
			got := Exp(Log(q, DefaultRotationEpsilon), DefaultRotationEpsilon)
			testutil.AssertQuatInDelta(t, q, got, 1e-12)
		})
	}
}

// TestLog_HalfAngleAxis tests that Log returns the unit axis scaled by the half-angle.
func TestLog_HalfAngleAxis(t *testing.T) {
	axis := r3.Unit(r3.Vec{X: 2, Y: -1, Z: 0.5})
	angle := 0.9
	q := testutil.AxisAngle(axis, angle)

	got := Log(q, DefaultRotationEpsilon)
	testutil.AssertVecInDelta(t, r3.Scale(angle/2, axis), got, 1e-12)

	scaled := ToScaledAngleAxis(q, DefaultRotationEpsilon)
	testutil.AssertVecInDelta(t, r3.Scale(angle, axis), scaled, 1e-12)
	testutil.AssertQuatInDelta(t, q, FromScaledAngleAxis(scaled, DefaultRotationEpsilon), 1e-12)
}

// TestLog_Identity tests that the identity maps to the zero vector and back.
func TestLog_Identity(t *testing.T) {
	v := Log(Identity, DefaultRotationEpsilon)
	assert.Equal(t, r3.Vec{}, v)
	assert.Equal(t, Identity, Exp(r3.Vec{}, DefaultRotationEpsilon))
}

// TestLogExp_NearIdentityBranch tests that the first-order branches stay within O(eps)
// of the exact mapping.
func TestLogExp_NearIdentityBranch(t *testing.T) {
	const eps = DefaultRotationEpsilon
	axis := r3.Unit(r3.Vec{X: 0.3, Y: -0.4, Z: 0.866})

	// Vector part of length ~5e-9, inside the eps-gated branch.
	angle := 1e-8
	q := testutil.AxisAngle(axis, angle)
	exactLog := r3.Scale(angle/2, axis)
	approxLog := Log(q, eps)
	assert.LessOrEqual(t, r3.Norm(r3.Sub(exactLog, approxLog)), eps)

	v := r3.Scale(angle/2, axis)
	exactExp := quat.Number{
		Real: math.Cos(angle / 2),
		Imag: math.Sin(angle/2) * axis.X,
		Jmag: math.Sin(angle/2) * axis.Y,
		Kmag: math.Sin(angle/2) * axis.Z,
	}
	approxExp := Exp(v, eps)
	assert.LessOrEqual(t, quat.Abs(quat.Sub(exactExp, approxExp)), eps)
	assert.InDelta(t, 1.0, quat.Abs(approxExp), testutil.UnitTolerance)
}

// TestExp_UnitLength tests that Exp always produces unit rotations.
func TestExp_UnitLength(t *testing.T) {
	for _, v := range []r3.Vec{
		{X: 1e-12},
		{X: 0.1, Y: 0.2},
		{X: 1, Y: 1, Z: 1},
		{Z: 3},
		{X: -5, Y: 2, Z: 0.5},
	} {
		q := Exp(v, DefaultRotationEpsilon)
		assert.InDelta(t, 1.0, quat.Abs(q), testutil.UnitTolerance, "Exp(%v) not unit", v)
	}
}

// TestAbs tests shortest-path canonicalization.
func TestAbs(t *testing.T) {
	q := quat.Number{Real: -0.5, Imag: 0.5, Jmag: -0.5, Kmag: 0.5}
	got := Abs(q)
	assert.Equal(t, quat.Number{Real: 0.5, Imag: -0.5, Jmag: 0.5, Kmag: -0.5}, got)

	positive := quat.Number{Real: 0.5, Imag: 0.5, Jmag: 0.5, Kmag: 0.5}
	assert.Equal(t, positive, Abs(positive))

	testutil.AssertSameRotation(t, q, got, 1e-15)
}

// TestNormalize tests unit scaling and the degenerate fallbacks.
func TestNormalize(t *testing.T) {
	got := Normalize(quat.Number{Real: 2, Imag: 0, Jmag: 0, Kmag: 2})
	testutil.AssertQuatInDelta(t, quat.Number{Real: math.Sqrt2 / 2, Kmag: math.Sqrt2 / 2}, got, 1e-15)

	assert.Equal(t, Identity, Normalize(quat.Number{}))
	assert.Equal(t, Identity, Normalize(quat.Number{Real: math.NaN()}))
	assert.Equal(t, Identity, Normalize(quat.Number{Imag: math.Inf(1)}))
}

// TestShortestDelta tests that offsets are stored normalized and on the short arc.
func TestShortestDelta(t *testing.T) {
	q := quat.Number{Real: -3, Imag: 0, Jmag: 4, Kmag: 0}
	got := ShortestDelta(q)
	testutil.AssertUnit(t, []quat.Number{got}, testutil.UnitTolerance)
	testutil.AssertCanonical(t, []quat.Number{got})
	testutil.AssertQuatInDelta(t, quat.Number{Real: 0.6, Jmag: -0.8}, got, 1e-15)
}

// BenchmarkLogExp benchmarks a full tangent-space round trip.
func BenchmarkLogExp(b *testing.B) {
	q := testutil.AxisAngle(r3.Vec{X: 1, Y: 2, Z: 3}, 0.8)
	for b.Loop() {
		_ = Exp(Log(q, DefaultRotationEpsilon), DefaultRotationEpsilon)
	}
}

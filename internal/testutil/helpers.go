// Package testutil provides reusable test helper functions for inertialization tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	UnitTolerance    = 1e-9
	KernelTolerance  = 1e-6
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertNonIncreasing verifies that a slice never grows from one element to the next.
func AssertNonIncreasing(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1]+tolerance {
			return assert.Fail(t, "not non-increasing",
				"s[%d]=%g > s[%d]=%g", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertVecInDelta verifies that two vectors agree component-wise within tolerance.
func AssertVecInDelta(t *testing.T, expected, actual r3.Vec, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := assert.InDelta(t, expected.X, actual.X, tolerance, msgAndArgs...)
	ok = assert.InDelta(t, expected.Y, actual.Y, tolerance, msgAndArgs...) && ok
	return assert.InDelta(t, expected.Z, actual.Z, tolerance, msgAndArgs...) && ok
}

// AssertQuatInDelta verifies that two quaternions agree component-wise within tolerance.
func AssertQuatInDelta(t *testing.T, expected, actual quat.Number, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := assert.InDelta(t, expected.Real, actual.Real, tolerance, msgAndArgs...)
	ok = assert.InDelta(t, expected.Imag, actual.Imag, tolerance, msgAndArgs...) && ok
	ok = assert.InDelta(t, expected.Jmag, actual.Jmag, tolerance, msgAndArgs...) && ok
	return assert.InDelta(t, expected.Kmag, actual.Kmag, tolerance, msgAndArgs...) && ok
}

// AssertSameRotation verifies that two quaternions describe the same rotation,
// accepting either sign of the double cover.
func AssertSameRotation(t *testing.T, expected, actual quat.Number, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	dot := expected.Real*actual.Real + expected.Imag*actual.Imag +
		expected.Jmag*actual.Jmag + expected.Kmag*actual.Kmag
	return assert.InDelta(t, 1.0, math.Abs(dot), tolerance,
		"rotations differ: expected=%v actual=%v", expected, actual)
}

// AssertUnit verifies that every quaternion in the slice has unit length.
func AssertUnit(t *testing.T, qs []quat.Number, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, q := range qs {
		if n := quat.Abs(q); math.Abs(n-1) > tolerance {
			return assert.Fail(t, "quaternion not normalized",
				"q[%d]=%v has length %g", i, q, n)
		}
	}
	return true
}

// AssertCanonical verifies that every quaternion in the slice has a non-negative real part.
func AssertCanonical(t *testing.T, qs []quat.Number, msgAndArgs ...any) bool {
	t.Helper()
	for i, q := range qs {
		if q.Real < 0 {
			return assert.Fail(t, "quaternion not on the short arc",
				"q[%d]=%v has negative real part", i, q)
		}
	}
	return true
}

// AxisAngle builds a unit quaternion rotating by angle radians about axis.
func AxisAngle(axis r3.Vec, angle float64) quat.Number {
	return quat.Number(r3.NewRotation(angle, axis))
}

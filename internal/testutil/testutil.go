// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertInDelta checks that got is within tol of want.
func AssertInDelta(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("value = %v, want %v (tolerance %v)", got, want, tol)
	}
}

// AssertVecInDelta checks each component of got against want.
func AssertVecInDelta(t *testing.T, got, want r3.Vec, tol float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("vector = %+v, want %+v (tolerance %v)", got, want, tol)
	}
}

// AssertQuatInDelta checks each component of got against want.
func AssertQuatInDelta(t *testing.T, got, want quat.Number, tol float64) {
	t.Helper()
	if math.Abs(got.Real-want.Real) > tol || math.Abs(got.Imag-want.Imag) > tol ||
		math.Abs(got.Jmag-want.Jmag) > tol || math.Abs(got.Kmag-want.Kmag) > tol {
		t.Errorf("quaternion = %+v, want %+v (tolerance %v)", got, want, tol)
	}
}

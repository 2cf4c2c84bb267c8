package solid

import (
	"math"
	"testing"
)

// wantFloat fails the test when got is not within eps of want.
func wantFloat(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %g, want %g (eps %g)", name, got, want, eps)
	}
}

// wantVec fails the test when got is not within eps of want per component.
func wantVec(t *testing.T, name string, got, want Vec3, eps float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps || math.Abs(got.Z-want.Z) > eps {
		t.Errorf("%s = %v, want %v (eps %g)", name, got, want, eps)
	}
}

// squareWire returns a closed CCW unit-scaled square in the z = at.Z plane,
// with its min corner at (at.X, at.Y).
func squareWire(size float64, at Vec3) *Wire {
	return NewWire(
		V3(at.X, at.Y, at.Z),
		V3(at.X+size, at.Y, at.Z),
		V3(at.X+size, at.Y+size, at.Z),
		V3(at.X, at.Y+size, at.Z),
	).Close()
}

// cube builds an axis-aligned closed cube of the given size with its min
// corner at, via a capped extrusion.
func cube(t *testing.T, size float64, at Vec3) *Mesh {
	t.Helper()
	m, err := Extrude(squareWire(size, at), V3(0, 0, size), DefaultExtrudeOptions())
	if err != nil {
		t.Fatalf("cube extrusion failed: %v", err)
	}
	return m
}

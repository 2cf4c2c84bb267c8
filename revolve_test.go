package solid

import (
	"errors"
	"math"
	"testing"
)

// faceted full-turn volume of a revolved disc of radius r, height h, n
// segments: the polygonal prism inscribed in the cylinder.
func prismVolume(r, h float64, n int) float64 {
	return 0.5 * float64(n) * r * r * math.Sin(2*math.Pi/float64(n)) * h
}

func TestRevolveCylinder(t *testing.T) {
	// Rectangle touching the axis revolved a full turn: a closed cylinder.
	profile := NewWire(
		V3(0, 0, 0),
		V3(1, 0, 0),
		V3(1, 0, 2),
		V3(0, 0, 2),
	).Close()
	m, err := Revolve(profile, AxisZ(), 2*math.Pi, DefaultRevolveOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatalf("full revolution left %d open edges", len(m.OpenEdges()))
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	wantFloat(t, "cylinder volume", m.Volume(), prismVolume(1, 2, 32), 1e-9)
}

func TestRevolveTorus(t *testing.T) {
	// A closed square profile away from the axis: a square-section torus.
	profile := NewWire(
		V3(2, 0, -0.5),
		V3(3, 0, -0.5),
		V3(3, 0, 0.5),
		V3(2, 0, 0.5),
	).Close()
	m, err := Revolve(profile, AxisZ(), 2*math.Pi, DefaultRevolveOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatal("torus has open edges")
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if m.Volume() <= 0 {
		t.Errorf("torus volume = %g, want positive", m.Volume())
	}
	// Pappus upper bound: section area 1 times the exact centroid orbit.
	if exact := 2 * math.Pi * 2.5; m.Volume() > exact {
		t.Errorf("torus volume = %g exceeds the exact bound %g", m.Volume(), exact)
	}
	// Faceting only shrinks the ring, and not by much at 32 segments.
	if m.Volume() < 0.95*2*math.Pi*2.5 {
		t.Errorf("torus volume = %g, implausibly small", m.Volume())
	}
}

func TestRevolvePartialCapped(t *testing.T) {
	profile := NewWire(
		V3(1, 0, 0),
		V3(2, 0, 0),
		V3(2, 0, 1),
		V3(1, 0, 1),
	).Close()
	m, err := Revolve(profile, AxisZ(), math.Pi/2, DefaultRevolveOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatalf("capped quarter revolution left %d open edges", len(m.OpenEdges()))
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if m.Volume() <= 0 {
		t.Errorf("volume = %g, want positive", m.Volume())
	}
}

func TestRevolvePartialUncapped(t *testing.T) {
	profile := NewWire(
		V3(1, 0, 0),
		V3(2, 0, 0),
		V3(2, 0, 1),
		V3(1, 0, 1),
	).Close()
	m, err := Revolve(profile, AxisZ(), math.Pi/2,
		RevolveOptions{Res: DefaultResolution(), Cap: false, Tol: DefaultTolerance()})
	if err != nil {
		t.Fatal(err)
	}
	loops := m.BoundaryLoops()
	if len(loops) != 2 {
		t.Fatalf("uncapped partial revolution boundary loops = %d, want 2", len(loops))
	}
}

func TestRevolveErrors(t *testing.T) {
	profile := squareWire(1, V3(2, 0, 0))
	var dpe *DegenerateProfileError

	_, err := Revolve(profile, Axis{}, math.Pi, DefaultRevolveOptions())
	if !errors.As(err, &dpe) {
		t.Errorf("zero axis: got %v, want *DegenerateProfileError", err)
	}

	_, err = Revolve(profile, AxisZ(), 0, DefaultRevolveOptions())
	if !errors.As(err, &dpe) {
		t.Errorf("zero angle: got %v, want *DegenerateProfileError", err)
	}

	// Profile entirely on the axis.
	onAxis := NewWire(V3(0, 0, 0), V3(0, 0, 1))
	_, err = Revolve(onAxis, AxisZ(), math.Pi, DefaultRevolveOptions())
	if !errors.As(err, &dpe) {
		t.Errorf("on-axis profile: got %v, want *DegenerateProfileError", err)
	}
}

func TestRevolveResolutionControlsFaceting(t *testing.T) {
	profile := NewWire(V3(1, 0, 0), V3(1, 0, 1))
	coarse, err := Revolve(profile, AxisZ(), 2*math.Pi,
		RevolveOptions{Res: Resolution{MaxAngle: math.Pi / 4}, Tol: DefaultTolerance()})
	if err != nil {
		t.Fatal(err)
	}
	fine, err := Revolve(profile, AxisZ(), 2*math.Pi,
		RevolveOptions{Res: Resolution{MaxAngle: math.Pi / 32}, Tol: DefaultTolerance()})
	if err != nil {
		t.Fatal(err)
	}
	if len(fine.Faces) <= len(coarse.Faces) {
		t.Errorf("finer resolution did not add faces: %d vs %d", len(fine.Faces), len(coarse.Faces))
	}
}

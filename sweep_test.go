package solid

import (
	"errors"
	"math"
	"testing"
)

func TestSweepStraightPath(t *testing.T) {
	// Sweeping a square along a straight path is an extrusion.
	profile := squareWire(1, Vec3{})
	path := NewWire(V3(0, 0, 0), V3(0, 0, 3))
	m, err := Sweep(path, profile, DefaultSweepOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatal("swept prism has open edges")
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	wantFloat(t, "swept volume", m.Volume(), 3, 1e-9)
}

func TestSweepBentPath(t *testing.T) {
	profile := squareWire(0.2, Vec3{})
	path := NewWire(
		V3(0, 0, 0),
		V3(0, 0, 1),
		V3(0, 0.5, 2),
		V3(0, 1.5, 2.5),
	)
	m, err := Sweep(path, profile, DefaultSweepOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatal("swept tube has open edges")
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if m.Volume() <= 0 {
		t.Errorf("volume = %g, want positive", m.Volume())
	}
}

func TestSweepHelicalSpring(t *testing.T) {
	path := Helix(AxisZ(), 2, 0.8, 4, DefaultResolution())
	profile := NewWire(
		V3(0.15, 0, 0),
		V3(0, 0.15, 0),
		V3(-0.15, 0, 0),
		V3(0, -0.15, 0),
	).Close()
	m, err := Sweep(path, profile, DefaultSweepOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatalf("capped helical sweep left %d open edges", len(m.OpenEdges()))
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if m.Volume() <= 0 {
		t.Errorf("volume = %g, want positive", m.Volume())
	}
}

func TestSweepClosedPlanarPath(t *testing.T) {
	// A square tube around a planar ring. With the profile centered on
	// the centerline, the volume is close to cross-section area times
	// centerline length; the triangulated joints deviate slightly.
	const nSeg = 24
	const r = 3.0
	pts := make([]Vec3, 0, nSeg)
	for i := 0; i < nSeg; i++ {
		a := 2 * math.Pi * float64(i) / nSeg
		pts = append(pts, V3(r*math.Cos(a), r*math.Sin(a), 0))
	}
	path := NewWire(pts...).Close()
	profile := squareWire(0.4, Vec3{})

	m, err := Sweep(path, profile, DefaultSweepOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatalf("closed-path sweep left %d open edges", len(m.OpenEdges()))
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	perimeter := nSeg * 2 * r * math.Sin(math.Pi/nSeg)
	wantFloat(t, "ring volume", m.Volume(), 0.4*0.4*perimeter, 0.05)
}

func TestSweepClosedNonPlanarPath(t *testing.T) {
	// A wobbling ring: the transported frame comes back rotated, and the
	// seam only closes because that rotation is spread along the path.
	const nSeg = 24
	const r = 3.0
	pts := make([]Vec3, 0, nSeg)
	for i := 0; i < nSeg; i++ {
		a := 2 * math.Pi * float64(i) / nSeg
		pts = append(pts, V3(r*math.Cos(a), r*math.Sin(a), 0.3*math.Sin(2*a)))
	}
	path := NewWire(pts...).Close()
	profile := squareWire(0.3, Vec3{})

	m, err := Sweep(path, profile, DefaultSweepOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatalf("non-planar closed sweep left %d open edges", len(m.OpenEdges()))
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if m.Volume() <= 0 {
		t.Errorf("volume = %g, want positive", m.Volume())
	}
}

func TestSweepCuspFails(t *testing.T) {
	profile := squareWire(0.1, Vec3{})
	path := NewWire(V3(0, 0, 0), V3(0, 0, 1), V3(0, 0, 0))
	var sfe *SingularFrameError
	if _, err := Sweep(path, profile, DefaultSweepOptions()); !errors.As(err, &sfe) {
		t.Fatalf("cusp path: got %v, want *SingularFrameError", err)
	}
}

func TestSweepZeroStepFails(t *testing.T) {
	profile := squareWire(0.1, Vec3{})
	path := NewWire(V3(0, 0, 0), V3(0, 0, 0), V3(0, 0, 1))
	var sfe *SingularFrameError
	if _, err := Sweep(path, profile, DefaultSweepOptions()); !errors.As(err, &sfe) {
		t.Fatalf("zero step: got %v, want *SingularFrameError", err)
	}
}

func TestSweepShortPathFails(t *testing.T) {
	var dpe *DegenerateProfileError
	_, err := Sweep(NewWire(V3(0, 0, 0)), squareWire(1, Vec3{}), DefaultSweepOptions())
	if !errors.As(err, &dpe) {
		t.Fatalf("one-point path: got %v, want *DegenerateProfileError", err)
	}
}

func TestLoftPrism(t *testing.T) {
	bottom := squareWire(1, Vec3{})
	top := squareWire(1, V3(0, 0, 2))
	m, err := Loft([]*Wire{bottom, top}, DefaultSweepOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatal("lofted prism has open edges")
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	wantFloat(t, "lofted volume", m.Volume(), 2, 1e-9)
}

func TestLoftTaper(t *testing.T) {
	// Three rings tapering upward: a faceted pyramid-frustum stack.
	rings := []*Wire{
		squareWire(2, Vec3{}),
		squareWire(1.5, V3(0.25, 0.25, 1)),
		squareWire(1, V3(0.5, 0.5, 2)),
	}
	m, err := Loft(rings, DefaultSweepOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatal("tapered loft has open edges")
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	// Stack of two frusta: V = h/3 (A1 + A2 + sqrt(A1 A2)) each.
	want := (4+2.25+math.Sqrt(4*2.25))/3 + (2.25+1+math.Sqrt(2.25))/3
	wantFloat(t, "frustum volume", m.Volume(), want, 1e-9)
}

func TestLoftErrors(t *testing.T) {
	var dpe *DegenerateProfileError

	_, err := Loft([]*Wire{squareWire(1, Vec3{})}, DefaultSweepOptions())
	if !errors.As(err, &dpe) {
		t.Errorf("single profile: got %v, want *DegenerateProfileError", err)
	}

	tri := NewWire(V3(0, 0, 1), V3(1, 0, 1), V3(0, 1, 1)).Close()
	_, err = Loft([]*Wire{squareWire(1, Vec3{}), tri}, DefaultSweepOptions())
	if !errors.As(err, &dpe) {
		t.Errorf("mismatched counts: got %v, want *DegenerateProfileError", err)
	}

	open := NewWire(V3(0, 0, 1), V3(1, 0, 1), V3(1, 1, 1), V3(0, 1, 1))
	_, err = Loft([]*Wire{squareWire(1, Vec3{}), open}, DefaultSweepOptions())
	if !errors.As(err, &dpe) {
		t.Errorf("mixed closedness: got %v, want *DegenerateProfileError", err)
	}
}

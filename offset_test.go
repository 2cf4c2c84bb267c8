package solid

import (
	"errors"
	"testing"
)

func TestOffsetWireSquareInward(t *testing.T) {
	// CCW square: positive offset moves toward the interior (left of travel).
	in, err := OffsetWire(squareWire(1, Vec3{}), 0.1, DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	if !in.IsClosed() {
		t.Fatal("offset dropped closedness")
	}
	wantFloat(t, "inward perimeter", in.Length(), 4*0.8, 1e-9)
}

func TestOffsetWireSquareOutward(t *testing.T) {
	out, err := OffsetWire(squareWire(1, Vec3{}), -0.1, DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	wantFloat(t, "outward perimeter", out.Length(), 4*1.2, 1e-9)
}

func TestOffsetWireOpenPolyline(t *testing.T) {
	w := NewWire(V3(0, 0, 0), V3(2, 0, 0), V3(2, 2, 0))
	o, err := OffsetWire(w, 0.5, DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	if o.Len() != 3 {
		t.Fatalf("offset point count = %d, want 3", o.Len())
	}
	// First segment's normal is +Y (plane normal +Z, travel +X).
	wantVec(t, "offset start", o.At(0), V3(0, 0.5, 0), 1e-12)
	// Miter corner at (2,0) moves diagonally to keep both offsets at 0.5.
	wantFloat(t, "corner x", o.At(1).X, 1.5, 1e-9)
	wantFloat(t, "corner y", o.At(1).Y, 0.5, 1e-9)
}

func TestOffsetWireSegment(t *testing.T) {
	// A bare segment offsets in some perpendicular plane without error.
	o, err := OffsetWire(NewWire(V3(0, 0, 0), V3(1, 0, 0)), 0.25, DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	wantFloat(t, "segment offset distance", o.At(0).Distance(V3(0, 0, 0)), 0.25, 1e-12)
	wantFloat(t, "segment length preserved", o.Length(), 1, 1e-12)
}

func TestOffsetWireCusp(t *testing.T) {
	// Doubling back creates a corner no miter can represent at tolerance.
	w := NewWire(V3(0, 0, 0), V3(2, 0, 0), V3(0, 0.001, 0))
	var dpe *DegenerateProfileError
	if _, err := OffsetWire(w, 0.1, Tolerance{Abs: 0.01}); !errors.As(err, &dpe) {
		t.Fatalf("cusp corner: got %v, want *DegenerateProfileError", err)
	}
}

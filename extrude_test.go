package solid

import (
	"errors"
	"testing"
)

func TestExtrudeCappedSquare(t *testing.T) {
	m, err := Extrude(squareWire(1, Vec3{}), V3(0, 0, 2), DefaultExtrudeOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsClosed() {
		t.Fatal("capped extrusion has open edges")
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	wantFloat(t, "extruded volume", m.Volume(), 2, 1e-9)
	// 8 lateral faces plus 2 per cap.
	if len(m.Faces) != 12 {
		t.Errorf("faces = %d, want 12", len(m.Faces))
	}
}

func TestExtrudeGroups(t *testing.T) {
	m, err := Extrude(squareWire(1, Vec3{}), V3(0, 0, 1), DefaultExtrudeOptions())
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int]bool{}
	for i := range m.Faces {
		seen[m.FaceGroup(i)] = true
	}
	for g := 0; g <= 2; g++ {
		if !seen[g] {
			t.Errorf("group %d missing (lateral 0, start cap 1, end cap 2)", g)
		}
	}
}

func TestExtrudeOpenProfile(t *testing.T) {
	// An open polyline extrudes to an open sheet.
	w := NewWire(V3(0, 0, 0), V3(1, 0, 0), V3(2, 1, 0))
	m, err := Extrude(w, V3(0, 0, 1), DefaultExtrudeOptions())
	if err != nil {
		t.Fatal(err)
	}
	if m.IsClosed() {
		t.Fatal("open profile produced a closed mesh")
	}
	if len(m.Faces) != 4 {
		t.Errorf("faces = %d, want 4 (two quads)", len(m.Faces))
	}
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestExtrudeClockwiseProfileStillOutward(t *testing.T) {
	// A CW profile must be reoriented so the solid keeps positive volume.
	cw := squareWire(1, Vec3{}).Reverse()
	m, err := Extrude(cw, V3(0, 0, 1), DefaultExtrudeOptions())
	if err != nil {
		t.Fatal(err)
	}
	wantFloat(t, "cw profile volume", m.Volume(), 1, 1e-9)
	if err := m.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestExtrudeZeroDirection(t *testing.T) {
	var dpe *DegenerateProfileError
	_, err := Extrude(squareWire(1, Vec3{}), Vec3{}, DefaultExtrudeOptions())
	if !errors.As(err, &dpe) {
		t.Fatalf("got %v, want *DegenerateProfileError", err)
	}
}

func TestExtrudeDegenerateProfile(t *testing.T) {
	w := NewWire(V3(0, 0, 0), V3(1e-15, 0, 0)).Close()
	if _, err := Extrude(w, V3(0, 0, 1), DefaultExtrudeOptions()); err == nil {
		t.Fatal("near-coincident profile extruded without error")
	}
}

func TestThickenPlate(t *testing.T) {
	plate := NewMesh()
	plate.AddPoint(V3(0, 0, 0))
	plate.AddPoint(V3(1, 0, 0))
	plate.AddPoint(V3(1, 1, 0))
	plate.AddPoint(V3(0, 1, 0))
	plate.AddFace(Triangle{0, 1, 2}, 0)
	plate.AddFace(Triangle{0, 2, 3}, 0)

	shell, err := Thicken(plate, 0.1, DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	if !shell.IsClosed() {
		t.Fatal("thickened plate has open edges")
	}
	if err := shell.Check(DefaultTolerance()); err != nil {
		t.Fatalf("check: %v", err)
	}
	wantFloat(t, "shell volume", shell.Volume(), 0.1, 1e-9)
}

func TestThickenBelowTolerance(t *testing.T) {
	plate := NewMesh()
	plate.AddPoint(V3(0, 0, 0))
	plate.AddPoint(V3(1, 0, 0))
	plate.AddPoint(V3(0, 1, 0))
	plate.AddFace(Triangle{0, 1, 2}, 0)
	if _, err := Thicken(plate, 1e-15, DefaultTolerance()); err == nil {
		t.Fatal("sub-tolerance thickness accepted")
	}
}

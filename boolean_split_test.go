package solid

import (
	"math"
	"testing"
)

func totalArea2(tris [][3]Vec2) float64 {
	var sum float64
	for _, t := range tris {
		sum += math.Abs(signedArea2(t[:]))
	}
	return sum
}

func TestClipSegTriWindow(t *testing.T) {
	tri := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}

	p0, p1, ok := clipSegTri2(tri, Vec2{0.25, -1}, Vec2{0.25, 2}, 1e-9)
	if !ok {
		t.Fatal("chord crossing the triangle reported as outside")
	}
	// Clipped to the boundary: enters the bottom edge, leaves the hypotenuse.
	wantFloat(t, "entry x", p0.X, 0.25, 1e-12)
	wantFloat(t, "entry y", p0.Y, 0, 1e-12)
	wantFloat(t, "exit x", p1.X, 0.25, 1e-12)
	wantFloat(t, "exit y", p1.Y, 0.75, 1e-12)

	if _, _, ok := clipSegTri2(tri, Vec2{2, -1}, Vec2{2, 2}, 1e-9); ok {
		t.Error("segment beside the triangle reported as inside")
	}
}

func TestSplitTriChord(t *testing.T) {
	tri := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}
	pieces := splitTri2(tri, Vec2{0.25, -1}, Vec2{0.25, 2}, 1e-9)
	if len(pieces) < 2 {
		t.Fatalf("crossing chord left the triangle uncut: %d piece(s)", len(pieces))
	}
	wantFloat(t, "covered area", totalArea2(pieces), 0.5, 1e-12)

	// The chord lies on piece edges: no piece straddles x = 0.25.
	for _, p := range pieces {
		lo, hi := false, false
		for _, q := range p {
			if q.X < 0.25-1e-9 {
				lo = true
			}
			if q.X > 0.25+1e-9 {
				hi = true
			}
		}
		if lo && hi {
			t.Errorf("piece %v straddles the cut line", p)
		}
	}
}

func TestSplitTriInteriorEndpoint(t *testing.T) {
	tri := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}
	pieces := splitTri2(tri, Vec2{0.25, 0.25}, Vec2{0.25, 2}, 1e-9)
	if len(pieces) < 3 {
		t.Fatalf("interior endpoint produced %d piece(s), want a fan", len(pieces))
	}
	wantFloat(t, "covered area", totalArea2(pieces), 0.5, 1e-12)
}

// edgeVertexClean fails when any mesh point lies strictly inside a face
// edge: a subdivision present on one side of the edge only.
func edgeVertexClean(t *testing.T, m *Mesh) {
	t.Helper()
	for fi, f := range m.Faces {
		for e := 0; e < 3; e++ {
			a := m.Points[f[e]]
			b := m.Points[f[(e+1)%3]]
			ab := b.Sub(a)
			l := ab.Length()
			if l == 0 {
				continue
			}
			for pi, p := range m.Points {
				tp := p.Sub(a).Dot(ab) / (l * l)
				if tp*l <= 1e-9 || (1-tp)*l <= 1e-9 {
					continue
				}
				if p.Sub(a.Add(ab.Mul(tp))).Length() <= 1e-9 {
					t.Fatalf("point %d lies inside an edge of face %d", pi, fi)
				}
			}
		}
	}
}

func TestSplitFacesPropagatesSharedEdgeCuts(t *testing.T) {
	// Two coplanar triangles sharing the square's diagonal. Cutting only
	// the first with a segment ending on the diagonal must subdivide the
	// neighbor's edge at the same point.
	m := NewMesh()
	m.AddPoint(V3(0, 0, 0))
	m.AddPoint(V3(1, 0, 0))
	m.AddPoint(V3(1, 1, 0))
	m.AddPoint(V3(0, 1, 0))
	m.AddFace(Triangle{0, 1, 2}, 0)
	m.AddFace(Triangle{0, 2, 3}, 0)

	segs := map[int][][2]Vec3{
		0: {{V3(0.6, 0.2, 0), V3(0.5, 0.5, 0)}},
	}
	out := splitFaces(m, segs, 1e-9)
	if len(out.Faces) <= 2 {
		t.Fatalf("split produced %d faces, want the cut pieces", len(out.Faces))
	}
	wantFloat(t, "covered area", out.Area(), 1, 1e-12)
	edgeVertexClean(t, out)
}

func TestSplitFacesUncutPassThrough(t *testing.T) {
	m := cube(t, 1, Vec3{})
	out := splitFaces(m, nil, 1e-9)
	if len(out.Faces) != len(m.Faces) {
		t.Fatalf("uncut mesh changed: %d faces, want %d", len(out.Faces), len(m.Faces))
	}
	wantFloat(t, "volume", out.Volume(), m.Volume(), 1e-12)
}

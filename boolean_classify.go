package solid

import (
	"math"

	"github.com/gogpu/solid/internal/bvh"
)

// Face classification against the other solid: inside, outside, or on the
// shared boundary. Boundary detection runs first (coplanar containment of
// the centroid); everything else falls to a parity ray cast.

type faceClass int

const (
	classOutside faceClass = iota
	classInside
	classBoundarySame // on the other surface, normals agree
	classBoundaryOpp  // on the other surface, normals oppose
)

// classifier wraps one mesh with its BVH for repeated queries.
type classifier struct {
	mesh  *Mesh
	tree  *bvh.Tree
	boxes []bvh.AABB
}

func newClassifier(m *Mesh) *classifier {
	boxes := make([]bvh.AABB, len(m.Faces))
	for i := range m.Faces {
		a, b, c := m.FacePoints(i)
		bb := BoxOf(a, b, c)
		boxes[i] = bvh.AABB{
			MinX: bb.Min.X, MinY: bb.Min.Y, MinZ: bb.Min.Z,
			MaxX: bb.Max.X, MaxY: bb.Max.Y, MaxZ: bb.Max.Z,
		}
	}
	return &classifier{mesh: m, tree: bvh.Build(boxes), boxes: boxes}
}

// classifyDirs are well-spread unit directions for the parity test. The
// first few attempts use these; later attempts jitter them. None is axis
// aligned, which avoids the worst coincidences with axis-aligned models.
var classifyDirs = []Vec3{
	{X: 0.267261241912424, Y: 0.534522483824849, Z: 0.801783725737273},
	{X: -0.577350269189626, Y: 0.211324865405187, Z: 0.788675134594813},
	{X: 0.485071250072666, Y: -0.727606875108999, Z: 0.485071250072666},
	{X: -0.301511344577764, Y: -0.603022689155527, Z: 0.739583822857882},
	{X: 0.688247201611685, Y: 0.229415733870562, Z: -0.688247201611685},
	{X: -0.455842305838552, Y: 0.569802882298190, Z: -0.683763458757828},
}

const classifyRetries = 12

// classify determines where point p (a face centroid of the other mesh,
// with that face's unit normal) lies relative to this solid.
// ok is false when every ray attempt grazed, meaning the configured
// epsilon cannot decide.
func (c *classifier) classify(p Vec3, normal Vec3, eps float64) (faceClass, bool) {
	// Boundary first: find a face whose plane contains p and whose
	// in-plane extent contains it.
	qb := bvh.AABB{
		MinX: p.X - eps, MinY: p.Y - eps, MinZ: p.Z - eps,
		MaxX: p.X + eps, MaxY: p.Y + eps, MaxZ: p.Z + eps,
	}
	boundary := faceClass(-1)
	c.tree.Overlapping(qb, func(fi int) {
		if boundary != faceClass(-1) {
			return
		}
		a, b, cc := c.mesh.FacePoints(fi)
		n := b.Sub(a).Cross(cc.Sub(a))
		if n.LengthSq() == 0 {
			return
		}
		nu := n.Normalize()
		if math.Abs(p.Sub(a).Dot(nu)) > eps {
			return
		}
		u, v := planeBasis(nu)
		p2 := project2(p, a, u, v)
		t2 := [3]Vec2{project2(a, a, u, v), project2(b, a, u, v), project2(cc, a, u, v)}
		if signedArea2(t2[:]) < 0 {
			t2[1], t2[2] = t2[2], t2[1]
		}
		if !pointInTri2(p2, t2[0], t2[1], t2[2], -eps) {
			return
		}
		if nu.Dot(normal) >= 0 {
			boundary = classBoundarySame
		} else {
			boundary = classBoundaryOpp
		}
	})
	if boundary != faceClass(-1) {
		return boundary, true
	}

	for attempt := 0; attempt < classifyRetries; attempt++ {
		dir := classifyDirs[attempt%len(classifyDirs)]
		if attempt >= len(classifyDirs) {
			// Deterministic jitter: rotate by a golden-angle multiple
			// around an axis derived from the attempt number.
			ang := 2.399963229728653 * float64(attempt)
			dir = RotateAxis(dir.Perpendicular(), ang).ApplyDir(dir)
		}
		crossings, ok := c.countCrossings(p, dir, eps)
		if !ok {
			continue
		}
		if crossings%2 == 1 {
			return classInside, true
		}
		return classOutside, true
	}
	return classOutside, false
}

// countCrossings counts proper ray-surface crossings from p along dir.
// ok is false when any candidate hit grazed an edge or plane.
func (c *classifier) countCrossings(p, dir Vec3, eps float64) (int, bool) {
	count := 0
	ok := true
	c.tree.RayCandidates(p.X, p.Y, p.Z, dir.X, dir.Y, dir.Z, func(fi int) {
		if !ok {
			return
		}
		a, b, cc := c.mesh.FacePoints(fi)
		t, kind := rayTriangle(p, dir, a, b, cc, eps)
		switch kind {
		case rayCross:
			if t > eps {
				count++
			}
		case rayGrazing:
			ok = false
		}
	})
	return count, ok
}

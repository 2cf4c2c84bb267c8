package solid

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/solid/internal/bvh"
)

// BoolOp selects the set-theoretic combination computed by Boolean.
type BoolOp int

const (
	// Union keeps everything bounded by either solid.
	Union BoolOp = iota
	// Intersection keeps only the region bounded by both solids.
	Intersection
	// Difference keeps the first solid minus the second.
	Difference
)

func (op BoolOp) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	default:
		return "unknown"
	}
}

// BoolOptions configures Boolean.
type BoolOptions struct {
	// Tol is the tolerance for intersection classification and welding.
	// One epsilon is resolved from it over the joint bounding box and used
	// consistently by every phase; mixing tolerances leaks cracks.
	Tol Tolerance

	// Workers bounds the parallelism of the intersection and
	// classification phases. Zero means GOMAXPROCS.
	Workers int
}

// DefaultBoolOptions returns the default tolerance and full parallelism.
func DefaultBoolOptions() BoolOptions {
	return BoolOptions{Tol: DefaultTolerance()}
}

// Boolean combines two closed manifold meshes into a third.
// See BooleanCtx; this variant is uncancellable.
func Boolean(a, b *Mesh, op BoolOp, opts BoolOptions) (*Mesh, error) {
	return BooleanCtx(context.Background(), a, b, op, opts)
}

// BooleanCtx combines two closed manifold meshes into a third: their
// union, intersection, or difference as solids. Inputs are never mutated.
//
// The pipeline intersects the two surfaces, re-triangulates crossed faces
// so the intersection curve lies on edges of both, classifies every face
// against the other solid, selects faces per the operation, and stitches
// the selection into one welded manifold mesh. Group ids survive: result
// faces keep the group of the input face they came from, with b's groups
// shifted as in Mesh.Merge.
//
// Cancellation is checked between phases only; ctx does not interrupt a
// phase in flight.
//
// Fails with *NonManifoldError when an input is not a closed manifold and
// *ToleranceAmbiguityError when a face cannot be classified at the
// configured tolerance. Neither is retried internally: adjusting the
// tolerance is the caller's decision.
func BooleanCtx(ctx context.Context, a, b *Mesh, op BoolOp, opts BoolOptions) (*Mesh, error) {
	if err := a.check("a", opts.Tol); err != nil {
		return nil, err
	}
	if err := b.check("b", opts.Tol); err != nil {
		return nil, err
	}
	if !a.IsClosed() {
		return nil, &NonManifoldError{Mesh: "a", Reason: "mesh has open boundary edges", Edges: firstN(a.OpenEdges(), 8)}
	}
	if !b.IsClosed() {
		return nil, &NonManifoldError{Mesh: "b", Reason: "mesh has open boundary edges", Edges: firstN(b.OpenEdges(), 8)}
	}

	eps := opts.Tol.resolve(a.Box().Union(b.Box()))
	log := Logger()
	log.Debug("solid: boolean", "op", op.String(), "facesA", len(a.Faces), "facesB", len(b.Faces), "epsilon", eps)

	// Phase 1: pairwise triangle intersections, parallel over a's faces.
	// Workers collect into worker-local buffers; the merge below is
	// deterministic because results are indexed by face, not by arrival.
	segsA, segsB, err := intersectPhase(ctx, a, b, eps, opts.Workers)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 2: re-triangulate crossed faces.
	splitA := splitFaces(a, segsA, eps)
	splitB := splitFaces(b, segsB, eps)
	log.Debug("solid: boolean split", "facesA", len(splitA.Faces), "facesB", len(splitB.Faces))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 3: classification, parallel per face.
	classA, err := classifyPhase(ctx, splitA, b, "a", eps, opts.Workers)
	if err != nil {
		return nil, err
	}
	classB, err := classifyPhase(ctx, splitB, a, "b", eps, opts.Workers)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 4: select faces per operation.
	out := NewMesh()
	out.Groups = []int{}
	takeFace := func(m *Mesh, fi int, flip bool, group int) {
		f := m.Faces[fi]
		i0 := out.AddPoint(m.Points[f[0]])
		i1 := out.AddPoint(m.Points[f[1]])
		i2 := out.AddPoint(m.Points[f[2]])
		if flip {
			i1, i2 = i2, i1
		}
		out.AddFace(Triangle{i0, i1, i2}, group)
	}
	groupOff := a.maxGroup() + 1
	for fi := range splitA.Faces {
		keep, flip := selectA(op, classA[fi])
		if keep {
			takeFace(splitA, fi, flip, splitA.FaceGroup(fi))
		}
	}
	for fi := range splitB.Faces {
		keep, flip := selectB(op, classB[fi])
		if keep {
			takeFace(splitB, fi, flip, splitB.FaceGroup(fi)+groupOff)
		}
	}

	// Phase 5: stitch. Weld at the shared epsilon closes the seams along
	// the intersection curve.
	result := out.weldEps(eps).StripDegenerate(Tolerance{Abs: eps}).Compact().orientConsistent()
	if result.IsClosed() && result.Volume() < 0 {
		result = result.Flip()
	}
	log.Debug("solid: boolean done", "faces", len(result.Faces), "points", len(result.Points))
	return result, nil
}

// selectA decides whether a face of the first input survives the
// operation, and whether its winding flips. Boundary faces are kept from
// the first input only, so coincident surfaces are not duplicated.
func selectA(op BoolOp, c faceClass) (keep, flip bool) {
	switch op {
	case Union:
		return c == classOutside || c == classBoundarySame, false
	case Intersection:
		return c == classInside || c == classBoundarySame, false
	case Difference:
		return c == classOutside || c == classBoundaryOpp, false
	}
	return false, false
}

// selectB decides the same for the second input. Difference keeps the
// second solid's faces that close the carved cavity, with reversed
// winding so the cavity surface faces outward.
func selectB(op BoolOp, c faceClass) (keep, flip bool) {
	switch op {
	case Union:
		return c == classOutside, false
	case Intersection:
		return c == classInside, false
	case Difference:
		return c == classInside, true
	}
	return false, false
}

// intersectPhase finds all intersection segments between faces of a and b.
func intersectPhase(ctx context.Context, a, b *Mesh, eps float64, workers int) (map[int][][2]Vec3, map[int][][2]Vec3, error) {
	cb := newClassifier(b) // reuse its BVH for pair culling

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	type pairSeg struct {
		fa, fb int
		s      [2]Vec3
	}
	results := make([][]pairSeg, workers)

	g, _ := errgroup.WithContext(ctx)
	chunk := (len(a.Faces) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := min(lo+chunk, len(a.Faces))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			var buf []pairSeg
			for fa := lo; fa < hi; fa++ {
				a0, a1, a2 := a.FacePoints(fa)
				bb := BoxOf(a0, a1, a2).Expand(eps)
				q := bvh.AABB{
					MinX: bb.Min.X, MinY: bb.Min.Y, MinZ: bb.Min.Z,
					MaxX: bb.Max.X, MaxY: bb.Max.Y, MaxZ: bb.Max.Z,
				}
				cb.tree.Overlapping(q, func(fb int) {
					b0, b1, b2 := b.FacePoints(fb)
					s0, s1, kind := triTriIntersect(a0, a1, a2, b0, b1, b2, eps)
					if kind == triTriSegment {
						buf = append(buf, pairSeg{fa: fa, fb: fb, s: [2]Vec3{s0, s1}})
					}
					// Coplanar overlap yields no cutting segment; the
					// boundary test in classification handles it.
				})
			}
			results[w] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	segsA := make(map[int][][2]Vec3)
	segsB := make(map[int][][2]Vec3)
	total := 0
	for _, buf := range results {
		for _, ps := range buf {
			segsA[ps.fa] = append(segsA[ps.fa], ps.s)
			segsB[ps.fb] = append(segsB[ps.fb], ps.s)
			total++
		}
	}
	Logger().Debug("solid: boolean intersect", "segments", total)
	return segsA, segsB, nil
}

// classifyPhase classifies every face of split against the solid other.
func classifyPhase(ctx context.Context, split, other *Mesh, tag string, eps float64, workers int) ([]faceClass, error) {
	c := newClassifier(other)
	classes := make([]faceClass, len(split.Faces))

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, _ := errgroup.WithContext(ctx)
	chunk := (len(split.Faces) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(split.Faces))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for fi := lo; fi < hi; fi++ {
				cls, ok := c.classify(split.FaceCentroid(fi), split.FaceNormal(fi), eps)
				if !ok {
					return &ToleranceAmbiguityError{Mesh: tag, Face: fi, Epsilon: eps}
				}
				classes[fi] = cls
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return classes, nil
}

// firstN returns at most n elements of edges.
func firstN(edges []Edge, n int) []Edge {
	if len(edges) <= n {
		return edges
	}
	return edges[:n]
}

package solid

// Triangle is a mesh face: three point indices with a winding that
// determines the outward normal (right-hand rule).
type Triangle [3]int

// Edge is a pair of point indices. Web edges are undirected; mesh edges
// derived from faces are directed by the face winding.
type Edge [2]int

// canonical returns the edge with its smaller index first, the form used
// as a map key for incidence queries.
func (e Edge) canonical() Edge {
	if e[0] > e[1] {
		return Edge{e[1], e[0]}
	}
	return e
}

// Wire is an ordered sequence of points forming a connected polyline,
// the profile input for construction operators.
//
// Points is the owned point buffer. Indices optionally selects and orders
// points out of that buffer; a nil Indices means the natural order
// 0..len(Points)-1. A closed wire implicitly connects the last point back
// to the first; the first point is never stored twice.
type Wire struct {
	Points  []Vec3
	Indices []int

	closed bool
}

// NewWire creates an open wire from points in order.
func NewWire(points ...Vec3) *Wire {
	return &Wire{Points: points}
}

// NewIndexedWire creates a wire that traverses points in the order given
// by indices.
func NewIndexedWire(points []Vec3, indices []int) *Wire {
	return &Wire{Points: points, Indices: indices}
}

// Close marks the wire as closed. If the stored sequence already ends on
// a repeat of the first point, that trailing repeat is dropped so closure
// stays implicit.
func (w *Wire) Close() *Wire {
	n := w.Len()
	if n > 1 && w.At(0) == w.At(n-1) {
		if w.Indices != nil {
			w.Indices = w.Indices[:len(w.Indices)-1]
		} else {
			w.Points = w.Points[:len(w.Points)-1]
		}
	}
	w.closed = true
	return w
}

// IsClosed reports whether the wire loops back to its first point.
func (w *Wire) IsClosed() bool {
	return w.closed
}

// Len returns the number of points in the traversal sequence.
func (w *Wire) Len() int {
	if w.Indices != nil {
		return len(w.Indices)
	}
	return len(w.Points)
}

// At returns the i-th point of the traversal sequence.
func (w *Wire) At(i int) Vec3 {
	if w.Indices != nil {
		return w.Points[w.Indices[i]]
	}
	return w.Points[i]
}

// SegmentCount returns the number of line segments in the wire.
func (w *Wire) SegmentCount() int {
	n := w.Len()
	if n < 2 {
		return 0
	}
	if w.closed {
		return n
	}
	return n - 1
}

// Segment returns the endpoints of the i-th segment.
func (w *Wire) Segment(i int) (Vec3, Vec3) {
	n := w.Len()
	return w.At(i), w.At((i + 1) % n)
}

// Length returns the total polyline length.
func (w *Wire) Length() float64 {
	var total float64
	for i := 0; i < w.SegmentCount(); i++ {
		a, b := w.Segment(i)
		total += a.Distance(b)
	}
	return total
}

// Box returns the bounding box of the wire's traversed points.
func (w *Wire) Box() Box {
	b := EmptyBox()
	for i := 0; i < w.Len(); i++ {
		b = b.Extend(w.At(i))
	}
	return b
}

// Reverse returns a new wire traversing the same points backwards.
func (w *Wire) Reverse() *Wire {
	n := w.Len()
	pts := make([]Vec3, n)
	for i := 0; i < n; i++ {
		pts[i] = w.At(n - 1 - i)
	}
	return &Wire{Points: pts, closed: w.closed}
}

// Transform returns a new wire with every point transformed by t.
func (w *Wire) Transform(t Transform) *Wire {
	n := w.Len()
	pts := make([]Vec3, n)
	for i := 0; i < n; i++ {
		pts[i] = t.Apply(w.At(i))
	}
	return &Wire{Points: pts, closed: w.closed}
}

// PlaneNormal estimates the normal of the plane the wire lies in, using
// Newell's method. The boolean false is returned for wires with fewer
// than three points or collinear points.
func (w *Wire) PlaneNormal() (Vec3, bool) {
	n := w.Len()
	if n < 3 {
		return Vec3{}, false
	}
	var normal Vec3
	for i := 0; i < n; i++ {
		a := w.At(i)
		b := w.At((i + 1) % n)
		normal.X += (a.Y - b.Y) * (a.Z + b.Z)
		normal.Y += (a.Z - b.Z) * (a.X + b.X)
		normal.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if normal.LengthSq() == 0 {
		return Vec3{}, false
	}
	return normal.Normalize(), true
}

// distinctPoints returns how many consecutive-distinct points the wire
// traverses within eps, the count construction operators validate against.
func (w *Wire) distinctPoints(eps float64) int {
	n := w.Len()
	if n == 0 {
		return 0
	}
	count := 1
	prev := w.At(0)
	for i := 1; i < n; i++ {
		p := w.At(i)
		if !p.NearEqual(prev, eps) {
			count++
			prev = p
		}
	}
	if w.closed && n > 1 && w.At(n-1).NearEqual(w.At(0), eps) {
		count--
	}
	return count
}

// Check verifies the wire invariant: consecutive traversed points are
// distinct within the tolerance, and indices are in range.
func (w *Wire) Check(tol Tolerance) error {
	eps := tol.resolve(w.Box())
	for _, idx := range w.Indices {
		if idx < 0 || idx >= len(w.Points) {
			return &DegenerateProfileError{Op: "wire", Reason: "point index out of range"}
		}
	}
	for i := 0; i < w.SegmentCount(); i++ {
		a, b := w.Segment(i)
		if a.NearEqual(b, eps) {
			return &DegenerateProfileError{Op: "wire", Reason: "consecutive points coincide"}
		}
	}
	return nil
}

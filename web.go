package solid

// Web is an unordered set of undirected edges over an owned point buffer.
// Unlike a Wire it carries no traversal order and may hold several
// disconnected components, which makes it the natural container for edge
// soups such as outlines assembled from multiple curves.
type Web struct {
	Points []Vec3
	Edges  []Edge
}

// NewWeb creates an empty web.
func NewWeb() *Web {
	return &Web{}
}

// WebOf converts a wire into a web with one edge per wire segment.
func WebOf(w *Wire) *Web {
	web := &Web{Points: make([]Vec3, 0, w.Len())}
	for i := 0; i < w.Len(); i++ {
		web.Points = append(web.Points, w.At(i))
	}
	for i := 0; i < w.SegmentCount(); i++ {
		n := w.Len()
		web.Edges = append(web.Edges, Edge{i, (i + 1) % n})
	}
	return web
}

// AddPoint appends a point and returns its index.
func (w *Web) AddPoint(p Vec3) int {
	w.Points = append(w.Points, p)
	return len(w.Points) - 1
}

// AddEdge appends an edge between two existing point indices.
func (w *Web) AddEdge(a, b int) {
	w.Edges = append(w.Edges, Edge{a, b})
}

// Box returns the bounding box of all points.
func (w *Web) Box() Box {
	return BoxOf(w.Points...)
}

// Merge returns a new web containing the edges of both webs, with the
// other web's indices shifted past this web's point buffer.
func (w *Web) Merge(o *Web) *Web {
	out := &Web{
		Points: make([]Vec3, 0, len(w.Points)+len(o.Points)),
		Edges:  make([]Edge, 0, len(w.Edges)+len(o.Edges)),
	}
	out.Points = append(out.Points, w.Points...)
	out.Points = append(out.Points, o.Points...)
	out.Edges = append(out.Edges, w.Edges...)
	off := len(w.Points)
	for _, e := range o.Edges {
		out.Edges = append(out.Edges, Edge{e[0] + off, e[1] + off})
	}
	return out
}

// Transform returns a new web with every point transformed by t.
func (w *Web) Transform(t Transform) *Web {
	out := &Web{
		Points: make([]Vec3, len(w.Points)),
		Edges:  append([]Edge(nil), w.Edges...),
	}
	for i, p := range w.Points {
		out.Points[i] = t.Apply(p)
	}
	return out
}

// Components returns the number of connected components among points that
// are referenced by at least one edge.
func (w *Web) Components() int {
	parent := make(map[int]int)
	var find func(int) int
	find = func(x int) int {
		p, ok := parent[x]
		if !ok {
			parent[x] = x
			return x
		}
		if p != x {
			p = find(p)
			parent[x] = p
		}
		return p
	}
	for _, e := range w.Edges {
		ra, rb := find(e[0]), find(e[1])
		if ra != rb {
			parent[ra] = rb
		}
	}
	roots := make(map[int]struct{})
	for x := range parent {
		roots[find(x)] = struct{}{}
	}
	return len(roots)
}

// Check verifies the web invariants: indices in range, no duplicate edge
// (in either direction), no zero-length edge within the tolerance.
func (w *Web) Check(tol Tolerance) error {
	eps := tol.resolve(w.Box())
	seen := make(map[Edge]struct{}, len(w.Edges))
	for _, e := range w.Edges {
		if e[0] < 0 || e[0] >= len(w.Points) || e[1] < 0 || e[1] >= len(w.Points) {
			return &NonManifoldError{Mesh: "web", Reason: "edge index out of range", Edges: []Edge{e}}
		}
		if e[0] == e[1] || w.Points[e[0]].NearEqual(w.Points[e[1]], eps) {
			return &NonManifoldError{Mesh: "web", Reason: "zero-length edge", Edges: []Edge{e}}
		}
		key := e.canonical()
		if _, dup := seen[key]; dup {
			return &NonManifoldError{Mesh: "web", Reason: "duplicate edge", Edges: []Edge{e}}
		}
		seen[key] = struct{}{}
	}
	return nil
}

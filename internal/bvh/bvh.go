// Package bvh provides an axis-aligned bounding volume hierarchy used by
// the boolean engine to cull triangle pair tests and accelerate ray
// classification queries. It is self-contained (its own AABB type) so the
// root package can depend on it without a cycle.
package bvh

import "sort"

// AABB is an axis-aligned box.
type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Union returns the smallest box containing both.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		MinX: min(a.MinX, b.MinX), MinY: min(a.MinY, b.MinY), MinZ: min(a.MinZ, b.MinZ),
		MaxX: max(a.MaxX, b.MaxX), MaxY: max(a.MaxY, b.MaxY), MaxZ: max(a.MaxZ, b.MaxZ),
	}
}

// Overlaps reports whether the boxes intersect or touch.
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX &&
		a.MinY <= b.MaxY && b.MinY <= a.MaxY &&
		a.MinZ <= b.MaxZ && b.MinZ <= a.MaxZ
}

// centers used for median splitting.
func (a AABB) center(axis int) float64 {
	switch axis {
	case 0:
		return (a.MinX + a.MaxX) / 2
	case 1:
		return (a.MinY + a.MaxY) / 2
	default:
		return (a.MinZ + a.MaxZ) / 2
	}
}

func (a AABB) extent(axis int) float64 {
	switch axis {
	case 0:
		return a.MaxX - a.MinX
	case 1:
		return a.MaxY - a.MinY
	default:
		return a.MaxZ - a.MinZ
	}
}

// node is one BVH node. Leaves store a slice of item indices; interior
// nodes store child node indices.
type node struct {
	box         AABB
	left, right int   // -1 for leaves
	items       []int // nil for interior nodes
}

// Tree is an immutable BVH over a set of item boxes.
// Safe for concurrent queries once built.
type Tree struct {
	nodes []node
	boxes []AABB
	root  int
}

const leafSize = 4

// Build constructs a tree over the given boxes. Item indices reported by
// queries refer to positions in this slice. An empty input yields a tree
// whose queries report nothing.
func Build(boxes []AABB) *Tree {
	t := &Tree{root: -1, boxes: append([]AABB(nil), boxes...)}
	if len(boxes) == 0 {
		return t
	}
	items := make([]int, len(boxes))
	for i := range items {
		items[i] = i
	}
	t.root = t.build(boxes, items)
	return t
}

func (t *Tree) build(boxes []AABB, items []int) int {
	box := boxes[items[0]]
	for _, it := range items[1:] {
		box = box.Union(boxes[it])
	}
	if len(items) <= leafSize {
		t.nodes = append(t.nodes, node{box: box, left: -1, right: -1, items: items})
		return len(t.nodes) - 1
	}
	axis := 0
	if box.extent(1) > box.extent(axis) {
		axis = 1
	}
	if box.extent(2) > box.extent(axis) {
		axis = 2
	}
	sort.Slice(items, func(i, j int) bool {
		return boxes[items[i]].center(axis) < boxes[items[j]].center(axis)
	})
	mid := len(items) / 2
	left := t.build(boxes, items[:mid])
	right := t.build(boxes, items[mid:])
	t.nodes = append(t.nodes, node{box: box, left: left, right: right})
	return len(t.nodes) - 1
}

// Overlapping calls fn for every item whose box overlaps the query box.
func (t *Tree) Overlapping(q AABB, fn func(item int)) {
	if t.root < 0 {
		return
	}
	t.overlapping(t.root, q, fn)
}

func (t *Tree) overlapping(ni int, q AABB, fn func(int)) {
	n := &t.nodes[ni]
	if !n.box.Overlaps(q) {
		return
	}
	if n.left < 0 {
		// A leaf box is the union of its items; each item still has to
		// pass on its own.
		for _, it := range n.items {
			if t.boxes[it].Overlaps(q) {
				fn(it)
			}
		}
		return
	}
	t.overlapping(n.left, q, fn)
	t.overlapping(n.right, q, fn)
}

// RayCandidates calls fn for every item whose box the ray may pass
// through. The ray starts at (ox,oy,oz) with direction (dx,dy,dz) and is
// unbounded in the positive direction.
func (t *Tree) RayCandidates(ox, oy, oz, dx, dy, dz float64, fn func(item int)) {
	if t.root < 0 {
		return
	}
	// Precompute inverse direction; infinities from zero components behave
	// correctly in the slab test.
	ix, iy, iz := 1/dx, 1/dy, 1/dz
	t.ray(t.root, ox, oy, oz, ix, iy, iz, fn)
}

func (t *Tree) ray(ni int, ox, oy, oz, ix, iy, iz float64, fn func(int)) {
	n := &t.nodes[ni]
	if !rayBox(n.box, ox, oy, oz, ix, iy, iz) {
		return
	}
	if n.left < 0 {
		for _, it := range n.items {
			if rayBox(t.boxes[it], ox, oy, oz, ix, iy, iz) {
				fn(it)
			}
		}
		return
	}
	t.ray(n.left, ox, oy, oz, ix, iy, iz, fn)
	t.ray(n.right, ox, oy, oz, ix, iy, iz, fn)
}

// rayBox is the branchless slab test.
func rayBox(b AABB, ox, oy, oz, ix, iy, iz float64) bool {
	t1 := (b.MinX - ox) * ix
	t2 := (b.MaxX - ox) * ix
	tmin := min(t1, t2)
	tmax := max(t1, t2)

	t1 = (b.MinY - oy) * iy
	t2 = (b.MaxY - oy) * iy
	tmin = max(tmin, min(t1, t2))
	tmax = min(tmax, max(t1, t2))

	t1 = (b.MinZ - oz) * iz
	t2 = (b.MaxZ - oz) * iz
	tmin = max(tmin, min(t1, t2))
	tmax = min(tmax, max(t1, t2))

	return tmax >= max(tmin, 0)
}

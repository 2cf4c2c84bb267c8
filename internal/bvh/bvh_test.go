package bvh

import (
	"math/rand"
	"sort"
	"testing"
)

func randomBoxes(r *rand.Rand, n int) []AABB {
	boxes := make([]AABB, n)
	for i := range boxes {
		x := r.Float64()*20 - 10
		y := r.Float64()*20 - 10
		z := r.Float64()*20 - 10
		boxes[i] = AABB{
			MinX: x, MinY: y, MinZ: z,
			MaxX: x + r.Float64()*2, MaxY: y + r.Float64()*2, MaxZ: z + r.Float64()*2,
		}
	}
	return boxes
}

func collect(fn func(func(int))) []int {
	var out []int
	fn(func(i int) { out = append(out, i) })
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOverlappingMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	boxes := randomBoxes(r, 300)
	tree := Build(boxes)

	for q := 0; q < 50; q++ {
		query := randomBoxes(r, 1)[0]
		query.MaxX += 3
		query.MaxY += 3
		query.MaxZ += 3

		got := collect(func(fn func(int)) { tree.Overlapping(query, fn) })
		var want []int
		for i, b := range boxes {
			if b.Overlaps(query) {
				want = append(want, i)
			}
		}
		if !equalInts(got, want) {
			t.Fatalf("query %d: tree reported %d items, brute force %d", q, len(got), len(want))
		}
	}
}

func TestRayCandidatesSuperset(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	boxes := randomBoxes(r, 200)
	tree := Build(boxes)

	for q := 0; q < 50; q++ {
		ox := r.Float64()*30 - 15
		oy := r.Float64()*30 - 15
		oz := r.Float64()*30 - 15
		dx := r.Float64()*2 - 1
		dy := r.Float64()*2 - 1
		dz := r.Float64()*2 - 1
		if dx == 0 && dy == 0 && dz == 0 {
			dx = 1
		}

		got := map[int]bool{}
		tree.RayCandidates(ox, oy, oz, dx, dy, dz, func(i int) { got[i] = true })

		// Every box the slab test hits directly must be a candidate.
		ix, iy, iz := 1/dx, 1/dy, 1/dz
		for i, b := range boxes {
			if rayBox(b, ox, oy, oz, ix, iy, iz) && !got[i] {
				t.Fatalf("query %d: box %d hit by ray but not reported", q, i)
			}
		}
	}
}

func TestOverlappingFiltersWithinLeaf(t *testing.T) {
	// Few enough boxes for one leaf: the query must still be tested
	// against each item box, not just the leaf's union box.
	boxes := []AABB{
		{MinX: 0, MaxX: 1, MaxY: 1, MaxZ: 1},
		{MinX: 10, MaxX: 11, MaxY: 1, MaxZ: 1},
		{MinX: 20, MaxX: 21, MaxY: 1, MaxZ: 1},
	}
	tree := Build(boxes)
	got := collect(func(fn func(int)) {
		tree.Overlapping(AABB{MinX: 10.2, MaxX: 10.8, MaxY: 1, MaxZ: 1}, fn)
	})
	if !equalInts(got, []int{1}) {
		t.Fatalf("got %v, want [1]", got)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := Build(nil)
	tree.Overlapping(AABB{MaxX: 1, MaxY: 1, MaxZ: 1}, func(int) {
		t.Fatal("empty tree reported an item")
	})
	tree.RayCandidates(0, 0, 0, 1, 0, 0, func(int) {
		t.Fatal("empty tree reported a ray candidate")
	})
}

func TestSingleBox(t *testing.T) {
	tree := Build([]AABB{{MaxX: 1, MaxY: 1, MaxZ: 1}})
	got := collect(func(fn func(int)) {
		tree.Overlapping(AABB{MinX: 0.5, MinY: 0.5, MinZ: 0.5, MaxX: 2, MaxY: 2, MaxZ: 2}, fn)
	})
	if !equalInts(got, []int{0}) {
		t.Fatalf("got %v, want [0]", got)
	}
	tree.Overlapping(AABB{MinX: 5, MinY: 5, MinZ: 5, MaxX: 6, MaxY: 6, MaxZ: 6}, func(int) {
		t.Fatal("disjoint query reported the box")
	})
}

func TestAABBUnionOverlaps(t *testing.T) {
	a := AABB{MinX: 0, MinY: 0, MinZ: 0, MaxX: 1, MaxY: 1, MaxZ: 1}
	b := AABB{MinX: 2, MinY: -1, MinZ: 0.5, MaxX: 3, MaxY: 0.5, MaxZ: 2}
	u := a.Union(b)
	if u.MinX != 0 || u.MinY != -1 || u.MaxX != 3 || u.MaxZ != 2 {
		t.Errorf("union = %+v", u)
	}
	if a.Overlaps(b) {
		t.Error("disjoint boxes reported overlapping")
	}
	if !a.Overlaps(AABB{MinX: 1, MinY: 1, MinZ: 1, MaxX: 2, MaxY: 2, MaxZ: 2}) {
		t.Error("touching boxes must overlap")
	}
}

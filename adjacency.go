package solid

// Adjacency queries over the face buffer. These build their index on every
// call; callers running many queries against an unchanging mesh should hold
// on to the returned structures instead of re-querying.

// edgeUses maps each canonical edge to the faces that use it.
func (m *Mesh) edgeUses() map[Edge][]int {
	uses := make(map[Edge][]int, len(m.Faces)*3/2)
	for i, f := range m.Faces {
		for k := 0; k < 3; k++ {
			e := Edge{f[k], f[(k+1)%3]}.canonical()
			uses[e] = append(uses[e], i)
		}
	}
	return uses
}

// FacesAroundPoint returns the indices of all faces touching point index p.
func (m *Mesh) FacesAroundPoint(p int) []int {
	var out []int
	for i, f := range m.Faces {
		if f[0] == p || f[1] == p || f[2] == p {
			out = append(out, i)
		}
	}
	return out
}

// OpenEdges returns the edges bordered by exactly one face, oriented as
// that face traverses them. A closed manifold mesh has none.
func (m *Mesh) OpenEdges() []Edge {
	count := make(map[Edge]int, len(m.Faces)*3/2)
	oriented := make(map[Edge]Edge, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for k := 0; k < 3; k++ {
			e := Edge{f[k], f[(k+1)%3]}
			key := e.canonical()
			count[key]++
			oriented[key] = e
		}
	}
	var open []Edge
	for key, n := range count {
		if n == 1 {
			open = append(open, oriented[key])
		}
	}
	return open
}

// IsClosed reports whether every edge is shared by at least two faces.
func (m *Mesh) IsClosed() bool {
	return len(m.OpenEdges()) == 0
}

// BoundaryLoops chains the open edges of an open mesh into ordered loops of
// point indices. Each loop is returned in the orientation the bordering
// faces induce. Non-loop boundary chains (broken meshes) are returned as
// open chains.
func (m *Mesh) BoundaryLoops() [][]int {
	open := m.OpenEdges()
	next := make(map[int]int, len(open))
	for _, e := range open {
		next[e[0]] = e[1]
	}

	visited := make(map[int]bool, len(open))
	var loops [][]int
	for _, e := range open {
		if visited[e[0]] {
			continue
		}
		loop := []int{e[0]}
		visited[e[0]] = true
		cur := e[0]
		for {
			n, ok := next[cur]
			if !ok || n == loop[0] {
				break
			}
			if visited[n] {
				break
			}
			loop = append(loop, n)
			visited[n] = true
			cur = n
		}
		loops = append(loops, loop)
	}
	return loops
}

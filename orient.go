package solid

// orientConsistent returns a new mesh in which every pair of faces sharing
// an edge traverses it in opposite directions, the precondition for a
// meaningful outward/inward distinction. Within each connected component
// the first face's winding is kept and propagated; a closed component that
// ends up inside-out is corrected afterwards by the volume-sign flip in
// finishOperator.
func (m *Mesh) orientConsistent() *Mesh {
	out := m.Clone()

	// Face adjacency through canonical edges.
	uses := out.edgeUses()
	visited := make([]bool, len(out.Faces))
	queue := make([]int, 0, len(out.Faces))

	traverses := func(f Triangle, e Edge) bool {
		// true when f walks e as e[0]->e[1]
		for k := 0; k < 3; k++ {
			if f[k] == e[0] && f[(k+1)%3] == e[1] {
				return true
			}
		}
		return false
	}

	for seed := range out.Faces {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			fi := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			f := out.Faces[fi]
			for k := 0; k < 3; k++ {
				e := Edge{f[k], f[(k+1)%3]}
				for _, ni := range uses[e.canonical()] {
					if ni == fi || visited[ni] {
						continue
					}
					// Neighbor must traverse the shared edge opposite to f.
					if traverses(out.Faces[ni], e) {
						g := out.Faces[ni]
						out.Faces[ni] = Triangle{g[0], g[2], g[1]}
					}
					visited[ni] = true
					queue = append(queue, ni)
				}
			}
		}
	}
	return out
}

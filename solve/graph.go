package solve

import (
	"fmt"

	"github.com/gogpu/solid"
)

// State is the solver's lifecycle state.
type State int

const (
	// Unsolved means no solve has run since the last edit.
	Unsolved State = iota
	// Solving means a solve pass is in progress.
	Solving
	// Converged means every residual is within tolerance and the system
	// is fully constrained.
	Converged
	// Diverged means the iteration budget ran out above tolerance.
	Diverged
	// Underconstrained means residuals converged but free degrees of
	// freedom remain; the reached configuration is one of infinitely many.
	Underconstrained
)

func (s State) String() string {
	switch s {
	case Unsolved:
		return "unsolved"
	case Solving:
		return "solving"
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case Underconstrained:
		return "underconstrained"
	default:
		return "unknown"
	}
}

// NodeID identifies a node in a Graph.
type NodeID int

type nodeKind int

const (
	nodePoint nodeKind = iota
	nodeBody
)

// node is a graph node: a point (3 variables) or a rigid body
// (6 variables: translation plus a rotation vector).
type node struct {
	kind nodeKind
	pos  solid.Vec3
	rot  solid.Vec3 // rotation vector, bodies only

	// fixed marks individual point coordinates as driven (not variables).
	// For bodies, fixed[0] freezes the whole pose.
	fixed [3]bool
}

// Graph is a constraint graph over points and rigid bodies.
//
// The graph owns its nodes and the solved configuration. Node coordinates
// are only written back when a solve pass ends in Converged or
// Underconstrained, and then atomically; a Diverged pass leaves them
// untouched.
type Graph struct {
	nodes       []node
	constraints []Constraint

	state State
	last  Result
}

// NewGraph creates an empty constraint graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddPoint adds a free 3D point node.
func (g *Graph) AddPoint(p solid.Vec3) NodeID {
	g.nodes = append(g.nodes, node{kind: nodePoint, pos: p})
	g.state = Unsolved
	return NodeID(len(g.nodes) - 1)
}

// AddPoint2D adds a point constrained to the XY plane: its Z coordinate is
// driven, not a variable. Planar sketches use these so the out-of-plane
// coordinate does not count as a free degree of freedom.
func (g *Graph) AddPoint2D(p solid.Vec2) NodeID {
	n := node{kind: nodePoint, pos: solid.Vec3{X: p.X, Y: p.Y}}
	n.fixed[2] = true
	g.nodes = append(g.nodes, n)
	g.state = Unsolved
	return NodeID(len(g.nodes) - 1)
}

// AddBody adds a rigid body node with the given initial position and
// rotation vector (axis times angle).
func (g *Graph) AddBody(pos, rot solid.Vec3) NodeID {
	g.nodes = append(g.nodes, node{kind: nodeBody, pos: pos, rot: rot})
	g.state = Unsolved
	return NodeID(len(g.nodes) - 1)
}

// Fix freezes a node entirely: its coordinates become driven values.
func (g *Graph) Fix(id NodeID) {
	n := &g.nodes[id]
	n.fixed = [3]bool{true, true, true}
	g.state = Unsolved
}

// FixCoord freezes one coordinate (0=X, 1=Y, 2=Z) of a point node.
func (g *Graph) FixCoord(id NodeID, axis int) {
	g.nodes[id].fixed[axis] = true
	g.state = Unsolved
}

// Point returns the current coordinates of a point node.
func (g *Graph) Point(id NodeID) solid.Vec3 {
	return g.nodes[id].pos
}

// SetPoint moves a point node (typically a driven one) and invalidates the
// solved state.
func (g *Graph) SetPoint(id NodeID, p solid.Vec3) {
	g.nodes[id].pos = p
	g.state = Unsolved
}

// Body returns the current pose of a body node.
func (g *Graph) Body(id NodeID) (pos, rot solid.Vec3) {
	n := g.nodes[id]
	return n.pos, n.rot
}

// Add appends a constraint. The constraint's node references are
// validated immediately.
func (g *Graph) Add(c Constraint) error {
	for _, id := range c.Nodes() {
		if int(id) < 0 || int(id) >= len(g.nodes) {
			return fmt.Errorf("solve: constraint references unknown node %d", id)
		}
	}
	g.constraints = append(g.constraints, c)
	g.state = Unsolved
	return nil
}

// Constraints returns the constraints in insertion order.
func (g *Graph) Constraints() []Constraint {
	return g.constraints
}

// State returns the current lifecycle state.
func (g *Graph) State() State {
	return g.state
}

// Last returns the result of the most recent solve pass.
func (g *Graph) Last() Result {
	return g.last
}

// bodyTransform returns the world transform of a body pose.
func bodyTransform(pos, rot solid.Vec3) solid.Transform {
	angle := rot.Length()
	if angle == 0 {
		return solid.Translate(pos)
	}
	return solid.Translate(pos).Mul(solid.RotateAxis(rot, angle))
}

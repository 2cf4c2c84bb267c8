package solid

import (
	"fmt"
	"strings"
)

// DegenerateProfileError reports a profile unusable by a construction
// operator: too few distinct points, a zero sweep direction, or mismatched
// profile sizes for lofting.
type DegenerateProfileError struct {
	// Op is the operator that rejected the profile ("extrude", "revolve", ...).
	Op string

	// Reason describes what is wrong with the profile.
	Reason string
}

func (e *DegenerateProfileError) Error() string {
	return fmt.Sprintf("solid: %s: degenerate profile: %s", e.Op, e.Reason)
}

// SingularFrameError reports a sweep path point where no continuous local
// frame exists: a zero-length step or a cusp where the tangent reverses.
type SingularFrameError struct {
	// Index is the path point at which the frame is undefined.
	Index int

	// Reason describes the singularity.
	Reason string
}

func (e *SingularFrameError) Error() string {
	return fmt.Sprintf("solid: sweep: singular frame at path point %d: %s", e.Index, e.Reason)
}

// NonManifoldError reports that a mesh violates the manifold invariant:
// an edge bordered by more than two faces, a shared edge without opposite
// winding, or a degenerate face. The boolean engine raises it as a
// precondition check; Mesh.Check raises it on any container.
type NonManifoldError struct {
	// Mesh tags which input is at fault ("a", "b", or a container name).
	Mesh string

	// Reason describes the violation.
	Reason string

	// Edges holds up to a handful of offending edges for diagnosis.
	Edges []Edge
}

func (e *NonManifoldError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "solid: mesh %q is not manifold: %s", e.Mesh, e.Reason)
	if len(e.Edges) > 0 {
		sb.WriteString(" (edges")
		for _, ed := range e.Edges {
			fmt.Fprintf(&sb, " %d-%d", ed[0], ed[1])
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// ToleranceAmbiguityError reports that the boolean engine could not decide
// whether a face lies inside or outside the other solid at the configured
// tolerance. It is surfaced rather than resolved arbitrarily; the caller
// may retry with an adjusted tolerance.
type ToleranceAmbiguityError struct {
	// Mesh tags which input the ambiguous face belongs to ("a" or "b").
	Mesh string

	// Face is the index of the face that could not be classified.
	Face int

	// Epsilon is the effective epsilon in use when classification failed.
	Epsilon float64
}

func (e *ToleranceAmbiguityError) Error() string {
	return fmt.Sprintf("solid: boolean: cannot classify face %d of mesh %q at epsilon %g",
		e.Face, e.Mesh, e.Epsilon)
}

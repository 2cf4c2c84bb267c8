// Package solve resolves constrained sketches and mechanism joint graphs
// to consistent coordinates by damped least-squares relaxation.
//
// A [Graph] holds nodes (points and rigid bodies) and typed constraints
// between them (distance, angle, coincidence, joints). Solving iterates a
// Newton-style correction: every constraint contributes residual rows and
// a local Jacobian block, the damped normal equations produce a step, and
// iteration stops when the largest residual falls under the convergence
// tolerance or the iteration budget runs out.
//
// One numerical core handles both 2D/3D sketches and mechanism kinematics;
// joints are just constraint variants coupling rigid-body poses.
//
// The solver's state machine is explicit and inspectable:
//
//	Unsolved -> Solving -> {Converged, Diverged, Underconstrained}
//
// Underconstrained is a valid terminal state: the residuals converged but
// free degrees of freedom remain, and the solver reports how many rather
// than silently picking one of infinitely many solutions. Diverged is an
// error ([*SolveFailedError]) naming the constraints with the largest
// residuals. Re-solving after an edit warm-starts from the last converged
// configuration.
package solve

package solve

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/solid"
)

// Options configures a solve pass.
type Options struct {
	// Tol is the convergence tolerance on the largest absolute residual.
	Tol float64

	// MaxIter is the iteration budget. The solver always terminates
	// within it, conflicting constraints included.
	MaxIter int

	// Damping is the initial Levenberg damping factor added to the
	// normal-equations diagonal. It adapts during the solve: successful
	// steps reduce it, rejected steps increase it.
	Damping float64

	// Workers bounds the parallelism of Jacobian assembly. Zero means one
	// worker per CPU when the constraint count justifies it.
	Workers int
}

// DefaultOptions returns the standard solving configuration.
func DefaultOptions() Options {
	return Options{Tol: 1e-9, MaxIter: 200, Damping: 1e-3}
}

// ConstraintResidual names one constraint's worst residual, for diagnosis.
type ConstraintResidual struct {
	// Index is the constraint's position in Graph.Constraints.
	Index int

	// Residual is the largest absolute residual row of that constraint.
	Residual float64
}

// Result reports the outcome of a solve pass, including the inspectable
// internals tests assert on: iteration count, the residual vector, and the
// terminal state.
type Result struct {
	State       State
	Iterations  int
	MaxResidual float64

	// FreeDOF is the number of unconstrained degrees of freedom remaining
	// (nonzero exactly when State is Underconstrained).
	FreeDOF int

	// Residuals is the final residual vector, one entry per constraint row.
	Residuals []float64

	// Worst lists constraints by decreasing residual (top entries only).
	Worst []ConstraintResidual
}

// SolveFailedError reports divergence: the iteration budget ran out with
// residuals above tolerance. Worst names the offending constraints so the
// caller can find the conflicting or over-constrained part of the sketch.
type SolveFailedError struct {
	Iterations  int
	MaxResidual float64
	Worst       []ConstraintResidual
}

func (e *SolveFailedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "solve: no convergence after %d iterations (max residual %g)",
		e.Iterations, e.MaxResidual)
	for i, w := range e.Worst {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&sb, "; constraint %d residual %g", w.Index, w.Residual)
	}
	return sb.String()
}

// Solve runs a solve pass with the given options. See SolveCtx.
func (g *Graph) Solve(opts Options) (Result, error) {
	return g.SolveCtx(context.Background(), opts)
}

// SolveCtx resolves the graph to a configuration satisfying every
// constraint within opts.Tol, warm-starting from the current coordinates.
//
// On Converged and Underconstrained the solved coordinates are written
// back to the nodes atomically; on Diverged the nodes keep their previous
// values and a *SolveFailedError is returned. Cancellation is checked
// once per iteration.
func (g *Graph) SolveCtx(ctx context.Context, opts Options) (Result, error) {
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultOptions().MaxIter
	}
	if opts.Tol <= 0 {
		opts.Tol = DefaultOptions().Tol
	}
	if opts.Damping <= 0 {
		opts.Damping = DefaultOptions().Damping
	}

	g.state = Solving
	lay := g.layout()
	x := lay.snapshot(g)

	nvar := len(x)
	nres := 0
	for _, c := range g.constraints {
		nres += c.ResidualCount()
	}

	if nres == 0 {
		res := Result{State: Converged}
		if nvar > 0 {
			res.State = Underconstrained
			res.FreeDOF = nvar
		}
		g.state = res.State
		g.last = res
		return res, nil
	}
	if nvar == 0 {
		// Everything driven: just report whether the targets are met.
		r := make([]float64, nres)
		g.evalAll(lay, x, r)
		res := Result{State: Converged, MaxResidual: maxAbs(r), Residuals: r, Worst: g.worst(r)}
		if res.MaxResidual > opts.Tol {
			res.State = Diverged
			g.state = Diverged
			g.last = res
			return res, &SolveFailedError{MaxResidual: res.MaxResidual, Worst: res.Worst}
		}
		g.state = Converged
		g.last = res
		return res, nil
	}

	r := make([]float64, nres)
	g.evalAll(lay, x, r)
	norm := normSq(r)
	lambda := opts.Damping

	jac := mat.NewDense(nres, nvar, nil)
	iter := 0
	for ; iter < opts.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			g.state = Unsolved
			return Result{State: Unsolved, Iterations: iter}, err
		}
		if maxAbs(r) <= opts.Tol {
			break
		}

		jac.Zero()
		g.assembleJacobian(lay, x, jac, opts.Workers)

		step, ok := dampedStep(jac, r, lambda)
		if !ok {
			lambda *= 10
			continue
		}

		// Trial update; accept only if the aggregate residual shrinks.
		trial := make([]float64, nvar)
		copy(trial, x)
		for i := range trial {
			trial[i] += step[i]
		}
		rt := make([]float64, nres)
		g.evalAll(lay, trial, rt)
		if nt := normSq(rt); nt < norm {
			x, r, norm = trial, rt, nt
			lambda *= 0.7
			if lambda < 1e-12 {
				lambda = 1e-12
			}
		} else {
			lambda *= 10
			if lambda > 1e12 {
				// Fully damped and still no progress: conflicting
				// constraints. Burn the remaining budget and report.
				iter++
				break
			}
		}
	}

	res := Result{
		Iterations:  iter,
		MaxResidual: maxAbs(r),
		Residuals:   r,
		Worst:       g.worst(r),
	}
	solid.Logger().Debug("solve: pass finished",
		"iterations", iter, "maxResidual", res.MaxResidual, "vars", nvar, "rows", nres)

	if res.MaxResidual > opts.Tol {
		res.State = Diverged
		g.state = Diverged
		g.last = res
		return res, &SolveFailedError{Iterations: iter, MaxResidual: res.MaxResidual, Worst: res.Worst}
	}

	// Converged; decide full- vs under-constrained by Jacobian rank at the
	// solution.
	jac.Zero()
	g.assembleJacobian(lay, x, jac, opts.Workers)
	rank := jacobianRank(jac)
	if rank < nvar {
		res.State = Underconstrained
		res.FreeDOF = nvar - rank
	} else {
		res.State = Converged
	}

	lay.writeBack(g, x)
	g.state = res.State
	g.last = res
	return res, nil
}

// dampedStep solves (J'J + lambda*I) dx = -J'r.
func dampedStep(jac *mat.Dense, r []float64, lambda float64) ([]float64, bool) {
	_, nvar := jac.Dims()
	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)
	for i := 0; i < nvar; i++ {
		jtj.Set(i, i, jtj.At(i, i)+lambda)
	}
	rv := mat.NewVecDense(len(r), r)
	var jtr mat.VecDense
	jtr.MulVec(jac.T(), rv)
	jtr.ScaleVec(-1, &jtr)

	var dx mat.VecDense
	if err := dx.SolveVec(&jtj, &jtr); err != nil {
		return nil, false
	}
	out := make([]float64, nvar)
	for i := range out {
		out[i] = dx.AtVec(i)
		if !isFinite(out[i]) {
			return nil, false
		}
	}
	return out, true
}

// jacobianRank is the numerical rank by singular values.
func jacobianRank(jac *mat.Dense) int {
	var svd mat.SVD
	if !svd.Factorize(jac, mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0
	}
	rows, cols := jac.Dims()
	tol := float64(max(rows, cols)) * values[0] * 1e-12
	if tol <= 0 {
		tol = 1e-12
	}
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank
}

// worst ranks constraints by their largest absolute residual row.
func (g *Graph) worst(r []float64) []ConstraintResidual {
	out := make([]ConstraintResidual, 0, len(g.constraints))
	row := 0
	for i, c := range g.constraints {
		worst := 0.0
		for k := 0; k < c.ResidualCount(); k++ {
			if a := math.Abs(r[row+k]); a > worst {
				worst = a
			}
		}
		row += c.ResidualCount()
		out = append(out, ConstraintResidual{Index: i, Residual: worst})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Residual > out[j].Residual })
	if len(out) > 8 {
		out = out[:8]
	}
	return out
}

// assembleJacobian fills jac row-by-row. Distance and Coincident rows are
// analytic; the remaining variants use central differences over only the
// variables their nodes own, so each constraint writes a disjoint block
// and assembly parallelizes without locks.
func (g *Graph) assembleJacobian(lay layout, x []float64, jac *mat.Dense, workers int) {
	type job struct {
		c   Constraint
		row int
	}
	jobs := make([]job, 0, len(g.constraints))
	row := 0
	for _, c := range g.constraints {
		jobs = append(jobs, job{c: c, row: row})
		row += c.ResidualCount()
	}

	run := func(j job) {
		switch c := j.c.(type) {
		case Distance:
			pa := lay.point(g, x, c.A)
			pb := lay.point(g, x, c.B)
			d := pa.Sub(pb)
			l := d.Length()
			if l == 0 {
				// Gradient undefined at coincidence; nudge via FD.
				g.fdRows(lay, x, j.c, j.row, jac)
				return
			}
			u := d.Div(l)
			setPointRow(lay, jac, j.row, c.A, u)
			setPointRow(lay, jac, j.row, c.B, u.Neg())
		case Coincident:
			for k := 0; k < 3; k++ {
				axis := unitAxis(k)
				setPointRow(lay, jac, j.row+k, c.A, axis)
				setPointRow(lay, jac, j.row+k, c.B, axis.Neg())
			}
		default:
			g.fdRows(lay, x, j.c, j.row, jac)
		}
	}

	if workers == 1 || len(jobs) < 64 {
		for _, j := range jobs {
			run(j)
		}
		return
	}
	var wg sync.WaitGroup
	if workers <= 0 {
		workers = 8
	}
	chunk := (len(jobs) + workers - 1) / workers
	for lo := 0; lo < len(jobs); lo += chunk {
		hi := min(lo+chunk, len(jobs))
		wg.Add(1)
		go func(batch []job) {
			defer wg.Done()
			for _, j := range batch {
				run(j)
			}
		}(jobs[lo:hi])
	}
	wg.Wait()
}

// fdRows fills a constraint's Jacobian block by central differences over
// the variables of its nodes.
func (g *Graph) fdRows(lay layout, x []float64, c Constraint, row int, jac *mat.Dense) {
	nres := c.ResidualCount()
	base := make([]float64, nres)
	plus := make([]float64, nres)
	minus := make([]float64, nres)
	g.evalConstraint(lay, x, c, base)

	for _, id := range c.Nodes() {
		for _, vi := range lay.vars[id] {
			if vi < 0 {
				continue
			}
			h := 1e-7 * math.Max(1, math.Abs(x[vi]))
			old := x[vi]
			x[vi] = old + h
			g.evalConstraint(lay, x, c, plus)
			x[vi] = old - h
			g.evalConstraint(lay, x, c, minus)
			x[vi] = old
			for k := 0; k < nres; k++ {
				jac.Set(row+k, vi, (plus[k]-minus[k])/(2*h))
			}
		}
	}
}

// setPointRow writes a point's 3-component gradient into one Jacobian row,
// skipping driven coordinates.
func setPointRow(lay layout, jac *mat.Dense, row int, id NodeID, grad solid.Vec3) {
	vs := lay.vars[id]
	comps := [3]float64{grad.X, grad.Y, grad.Z}
	for k := 0; k < 3; k++ {
		if vs[k] >= 0 {
			jac.Set(row, vs[k], comps[k])
		}
	}
}

func unitAxis(k int) solid.Vec3 {
	switch k {
	case 0:
		return solid.Vec3{X: 1}
	case 1:
		return solid.Vec3{Y: 1}
	default:
		return solid.Vec3{Z: 1}
	}
}

func maxAbs(r []float64) float64 {
	m := 0.0
	for _, v := range r {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func normSq(r []float64) float64 {
	s := 0.0
	for _, v := range r {
		s += v * v
	}
	return s
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

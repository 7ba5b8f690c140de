package ndround

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/integerize/ndarray"
)

// Exact rounds a non-negative array to integers matching integer marginals
// on every axis by ceiling every cell and then solving for the decrements
// exactly.
//
// Each cell whose slices all still carry error may lose up to
// min(opts.MaxCellAdjustment, its ceiled value) units. Two-axis arrays are
// solved as a max-flow (rows → cells → columns); higher ranks by
// depth-first branch-and-bound that always branches on the most
// constrained slice.
//
// Errors: ErrInvalidInput family, ErrInfeasible (possibly in
// *ndarray.SliceError), ErrSolverLimit, ctx.Err(), ErrInternal.
func Exact(ctx context.Context, a *ndarray.Array, marginals [][]int, opts Options) (*ndarray.Array, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := validateProblem(a, marginals); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	x := a.Clone()
	x.Ceil()
	if err := solveExact(ctx, x, marginals, opts); err != nil {
		return nil, err
	}

	return x, nil
}

// solveExact finishes an integral x in place. x must already be ceiled (or
// partially decremented by Stochastic).
func solveExact(ctx context.Context, x *ndarray.Array, marginals [][]int, opts Options) error {
	errs := roundingErrors(x, marginals)
	if err := checkReachable(errs); err != nil {
		return err
	}
	total := totalError(errs)
	if total == 0 {
		return verify(x, marginals)
	}

	p := newResidual(x, errs, opts.MaxCellAdjustment)
	if err := p.precheck(); err != nil {
		return err
	}
	opts.Logger.Debug("exact solve",
		"axes", x.NDim(), "error", total, "variables", len(p.vars))

	var (
		dec []int
		err error
	)
	if x.NDim() == 2 {
		dec, err = p.solveFlow(ctx, total, opts)
	} else {
		dec, err = p.solveBranchAndBound(ctx, opts.MaxNodes)
	}
	if err != nil {
		return err
	}

	data := x.Raw()
	for i, v := range p.vars {
		data[v.off] -= float64(dec[i])
	}

	return verify(x, marginals)
}

// cellVar is one decrementable cell.
type cellVar struct {
	off    int
	bound  int
	slices []int // slice id per axis
}

// residual is the decrement problem left after ceiling: every slice id
// (axis-major numbering) must lose exactly need[id] units across its vars.
type residual struct {
	base      []int // first slice id of each axis
	need      []int
	vars      []cellVar
	sliceVars [][]int
}

func newResidual(x *ndarray.Array, errs [][]int, maxAdj int) *residual {
	p := &residual{base: make([]int, len(errs))}
	for axis, e := range errs {
		p.base[axis] = len(p.need)
		p.need = append(p.need, e...)
	}
	p.sliceVars = make([][]int, len(p.need))

	data := x.Raw()
	x.Walk(func(off int, coords []int) {
		v := int(data[off])
		if v <= 0 {
			return
		}
		for axis, c := range coords {
			if errs[axis][c] == 0 {
				return
			}
		}
		cv := cellVar{off: off, bound: min(maxAdj, v), slices: make([]int, len(coords))}
		for axis, c := range coords {
			cv.slices[axis] = p.base[axis] + c
		}
		p.vars = append(p.vars, cv)
	})

	for i, v := range p.vars {
		for _, s := range v.slices {
			p.sliceVars[s] = append(p.sliceVars[s], i)
		}
	}
	// larger cells first: they absorb error with fewer branches
	for _, vs := range p.sliceVars {
		sort.SliceStable(vs, func(a, b int) bool {
			return p.vars[vs[a]].bound > p.vars[vs[b]].bound
		})
	}

	return p
}

// slice maps a slice id back to (axis, index).
func (p *residual) slice(id int) (axis, index int) {
	axis = len(p.base) - 1
	for id < p.base[axis] {
		axis--
	}

	return axis, id - p.base[axis]
}

// precheck rejects slices whose vars cannot absorb their error even at
// full bound.
func (p *residual) precheck() error {
	for id, need := range p.need {
		if need == 0 {
			continue
		}
		var capacity int
		for _, i := range p.sliceVars[id] {
			capacity += p.vars[i].bound
		}
		if capacity < need {
			axis, index := p.slice(id)
			return ndarray.AtSlice(axis, index,
				fmt.Errorf("error %d exceeds adjustable capacity %d: %w", need, capacity, ErrInfeasible))
		}
	}

	return nil
}

package ndround

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/katalvlaran/integerize/ndarray"
	"github.com/katalvlaran/integerize/sample"
)

// Stochastic rounds a non-negative array to integers matching integer
// marginals on every axis by ceiling every cell and then removing the
// surplus in randomized batches.
//
// Each step:
//  1. weight(cell) = Π over axes of the remaining error of the cell's slice,
//     zero for zero cells.
//  2. draw ceil(total error × Fraction) cells without replacement ∝ weight
//     (at most the number of positive-weight cells).
//  3. in every slice where the draw exceeds the slice error, return the
//     lowest-weighted drawn cells until it fits.
//  4. decrement the remaining drawn cells by one.
//
// Each step removes at least one unit. The loop runs until no error remains
// and the result is verified; opts.Threshold is ignored here and only
// governs the hand-off in Hybrid.
//
// Errors: ErrInvalidInput family, ErrInfeasible (a ceiled slice already
// below target), ErrDeadEnd, ErrInternal.
func Stochastic(a *ndarray.Array, marginals [][]int, rng *rand.Rand, opts Options) (*ndarray.Array, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := validateProblem(a, marginals); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	x := a.Clone()
	x.Ceil()
	run, err := newStochasticRun(x, marginals, opts)
	if err != nil {
		return nil, err
	}
	for run.total > 0 {
		if _, err = run.advance(rng); err != nil {
			return nil, err
		}
	}
	if err = verify(x, marginals); err != nil {
		return nil, err
	}

	return x, nil
}

// stochasticRun is the mutable state of one stochastic rounding.
type stochasticRun struct {
	x       *ndarray.Array
	errs    [][]int
	total   int
	weights []float64
	step    int
	opts    Options
}

func newStochasticRun(x *ndarray.Array, marginals [][]int, opts Options) (*stochasticRun, error) {
	errs := roundingErrors(x, marginals)
	if err := checkReachable(errs); err != nil {
		return nil, err
	}

	return &stochasticRun{
		x:       x,
		errs:    errs,
		total:   totalError(errs),
		weights: make([]float64, x.Size()),
		opts:    opts,
	}, nil
}

// computeWeights fills r.weights and returns the number of positive ones.
func (r *stochasticRun) computeWeights() int {
	var (
		data = r.x.Raw()
		pos  int
	)
	r.x.Walk(func(off int, coords []int) {
		w := 0.0
		if data[off] > 0 {
			w = 1
			for k, c := range coords {
				e := r.errs[k][c]
				if e <= 0 {
					w = 0
					break
				}
				w *= float64(e)
			}
		}
		r.weights[off] = w
		if w > 0 {
			pos++
		}
	})

	return pos
}

// drawn is one cell selected in a step.
type drawn struct {
	off    int
	weight float64
	coords []int
	keep   bool
}

// advance performs one step and returns the number of units removed.
func (r *stochasticRun) advance(rng *rand.Rand) (int, error) {
	pos := r.computeWeights()
	if pos == 0 {
		return 0, fmt.Errorf("step %d, remaining error %d: %w", r.step, r.total, ErrDeadEnd)
	}
	k := int(math.Ceil(float64(r.total) * r.opts.Fraction))
	k = min(max(k, 1), pos)

	picked, err := sample.WithoutReplacement(rng, r.weights, k)
	if err != nil {
		return 0, fmt.Errorf("%w: draw: %v", ErrInternal, err)
	}

	cells := make([]drawn, len(picked))
	for i, off := range picked {
		c := make([]int, r.x.NDim())
		r.x.Unravel(off, c)
		cells[i] = drawn{off: off, weight: r.weights[off], coords: c, keep: true}
	}
	r.pullBack(cells)

	var (
		data    = r.x.Raw()
		removed int
	)
	for _, c := range cells {
		if !c.keep {
			continue
		}
		data[c.off]--
		for axis, i := range c.coords {
			r.errs[axis][i]--
		}
		removed++
	}
	r.total -= removed
	r.step++
	r.opts.Logger.Debug("stochastic step",
		"step", r.step, "drawn", len(cells), "removed", removed, "remaining", r.total)

	return removed, nil
}

// pullBack un-selects the lowest-weighted cells of every slice whose
// selection exceeds its error. Axes are processed in order; dropping a cell
// only lowers counts, so earlier axes stay within bounds.
func (r *stochasticRun) pullBack(cells []drawn) {
	for axis, errs := range r.errs {
		members := make([][]int, len(errs))
		for i, c := range cells {
			if c.keep {
				members[c.coords[axis]] = append(members[c.coords[axis]], i)
			}
		}
		for idx, m := range members {
			excess := len(m) - errs[idx]
			if excess <= 0 {
				continue
			}
			sort.SliceStable(m, func(a, b int) bool {
				ca, cb := cells[m[a]], cells[m[b]]
				if ca.weight != cb.weight {
					return ca.weight < cb.weight
				}

				return ca.off < cb.off
			})
			for _, i := range m[:excess] {
				cells[i].keep = false
			}
		}
	}
}

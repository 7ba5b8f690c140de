package ipf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/integerize/ndarray"
)

// Balance fits a copy of a to marginals by iterative proportional fitting.
//
// Contracts:
//   - a is non-nil, finite and non-negative.
//   - len(marginals) == a.NDim() and len(marginals[k]) == a.Dim(k).
//   - marginals are finite, non-negative, with equal totals (relative 1e-9).
//   - every slice with a non-zero target holds some non-zero data.
//
// Hitting MaxIterations is not an error: the last state is returned with
// Converged == false.
//
// Errors: see package documentation; all raised before iterating.
// Complexity: O(iterations · ndim² · size).
func Balance(a *ndarray.Array, marginals [][]float64, opts Options) (Result, error) {
	if err := validate(a, marginals, opts); err != nil {
		return Result{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var (
		data    = a.Clone()
		factors = make([][]float64, len(marginals))
		maxDev  float64
		it      int
		axis    int
		i       int
		cur     []float64
		err     error
	)
	for axis = range marginals {
		factors[axis] = make([]float64, len(marginals[axis]))
	}

	for it = 1; it <= opts.MaxIterations; it++ {
		maxDev = 0
		for axis = range marginals {
			if cur, err = data.Marginal(axis); err != nil {
				return Result{}, err
			}
			for i = range cur {
				f := 1.0
				if cur[i] != 0 {
					f = marginals[axis][i] / cur[i]
				}
				factors[axis][i] = f
				maxDev = math.Max(maxDev, math.Abs(f-1))
			}
			if err = data.ScaleAxis(axis, factors[axis]); err != nil {
				return Result{}, err
			}
		}
		logger.Debug("ipf iteration", "iteration", it, "max_deviation", maxDev)

		if maxDev < opts.Threshold {
			return Result{Data: data, Iterations: it, MaxDeviation: maxDev, Converged: true}, nil
		}
	}
	logger.Info("ipf stopped at iteration cap",
		"iterations", opts.MaxIterations, "max_deviation", maxDev)

	return Result{Data: data, Iterations: opts.MaxIterations, MaxDeviation: maxDev}, nil
}

func validate(a *ndarray.Array, marginals [][]float64, opts Options) error {
	if math.IsNaN(opts.Threshold) || opts.Threshold < 0 {
		return fmt.Errorf("Threshold %v: %w", opts.Threshold, ErrBadOption)
	}
	if opts.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations %d: %w", opts.MaxIterations, ErrBadOption)
	}
	if err := ndarray.ValidateNonNegative(a); err != nil {
		switch {
		case errors.Is(err, ndarray.ErrNaNInf):
			return fmt.Errorf("%w: %w", ErrNaNInf, err)
		case errors.Is(err, ndarray.ErrNegative):
			return fmt.Errorf("%w: %w", ErrNegativeValue, err)
		default:
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	if len(marginals) != a.NDim() {
		return fmt.Errorf("%d marginals for %d axes: %w", len(marginals), a.NDim(), ErrDimensionMismatch)
	}

	var (
		totals = make([]float64, len(marginals))
		axis   int
		i      int
		v      float64
	)
	for axis = range marginals {
		if len(marginals[axis]) != a.Dim(axis) {
			return ndarray.AtSlice(axis, -1, fmt.Errorf("length %d, want %d: %w",
				len(marginals[axis]), a.Dim(axis), ErrDimensionMismatch))
		}
		for i, v = range marginals[axis] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ndarray.AtSlice(axis, i, ErrNaNInf)
			}
			if v < 0 {
				return ndarray.AtSlice(axis, i, ErrNegativeValue)
			}
			totals[axis] += v
		}
	}
	for axis = 1; axis < len(totals); axis++ {
		if math.Abs(totals[axis]-totals[0]) > totalTolerance*math.Max(1, math.Abs(totals[0])) {
			return fmt.Errorf("axis 0 total %v, axis %d total %v: %w",
				totals[0], axis, totals[axis], ErrInconsistentMarginals)
		}
	}

	current := a.Marginals()
	for axis = range marginals {
		for i, v = range marginals[axis] {
			if v != 0 && current[axis][i] == 0 {
				return ndarray.AtSlice(axis, i, ErrZeroSlice)
			}
		}
	}

	return nil
}

package ndround

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/integerize/ndarray"
)

// validateProblem checks the array and the integer marginals.
func validateProblem(a *ndarray.Array, marginals [][]int) error {
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

	var first int
	for axis, m := range marginals {
		if len(m) != a.Dim(axis) {
			return ndarray.AtSlice(axis, -1, fmt.Errorf("length %d, want %d: %w",
				len(m), a.Dim(axis), ErrDimensionMismatch))
		}
		var total int
		for i, v := range m {
			if v < 0 {
				return ndarray.AtSlice(axis, i, ErrNegativeControl)
			}
			total += v
		}
		if axis == 0 {
			first = total
		} else if total != first {
			return fmt.Errorf("axis 0 total %d, axis %d total %d: %w", first, axis, total, ErrInconsistentControls)
		}
	}

	return nil
}

// RoundingError returns, for every axis slice of an integral array, its
// sum minus the marginal target. Positive entries are units that still
// have to be removed.
//
// Errors: ErrInvalidInput family; ErrInvalidOutput when a is not integral.
func RoundingError(a *ndarray.Array, marginals [][]int) ([][]int, error) {
	if err := validateProblem(a, marginals); err != nil {
		return nil, err
	}
	if !a.IsIntegral() {
		return nil, fmt.Errorf("%w: array is not integral", ErrInvalidOutput)
	}

	return roundingErrors(a, marginals), nil
}

// roundingErrors assumes a validated, integral array.
func roundingErrors(a *ndarray.Array, marginals [][]int) [][]int {
	sums := a.Marginals()
	errs := make([][]int, len(marginals))
	for axis, m := range marginals {
		errs[axis] = make([]int, len(m))
		for i, target := range m {
			errs[axis][i] = int(math.Round(sums[axis][i])) - target
		}
	}

	return errs
}

// checkReachable rejects slices whose ceiled sum is already below target;
// decrements can never fix them.
func checkReachable(errs [][]int) error {
	for axis, e := range errs {
		for i, v := range e {
			if v < 0 {
				return ndarray.AtSlice(axis, i, fmt.Errorf("short by %d: %w", -v, ErrInfeasible))
			}
		}
	}

	return nil
}

// CheckOutput verifies that out is a valid rounding for marginals: every
// cell integral and ≥ 0, and every axis slice summing to its target.
//
// Errors: ErrInvalidInput family for malformed arguments; ErrInvalidOutput
// (possibly in *ndarray.SliceError) when out is not a valid rounding.
func CheckOutput(out *ndarray.Array, marginals [][]int) error {
	if err := validateProblem(out, marginals); err != nil {
		return err
	}
	if !out.IsIntegral() {
		return fmt.Errorf("%w: array is not integral", ErrInvalidOutput)
	}
	for axis, e := range roundingErrors(out, marginals) {
		for i, v := range e {
			if v != 0 {
				return ndarray.AtSlice(axis, i, fmt.Errorf("off by %d: %w", v, ErrInvalidOutput))
			}
		}
	}

	return nil
}

// verify is CheckOutput for the rounders' own results.
func verify(out *ndarray.Array, marginals [][]int) error {
	if err := CheckOutput(out, marginals); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return nil
}

func totalError(errs [][]int) int {
	var t int
	for _, v := range errs[0] {
		t += v
	}

	return t
}

package integerize

import (
	"fmt"
	"math"

	"github.com/katalvlaran/integerize/sample"
)

// snapEps is the distance under which a scaled value is treated as the
// integer it approximates before the ceiling is taken.
const snapEps = 1e-9

// Vector rounds non-negative continuous values to integers summing exactly
// to control, deviating from the rescaled values by less than one unit per
// entry.
//
// Steps:
//  1. control == 0 → all zeros.
//  2. all values zero → 1 in the first control positions (ErrInfeasible
//     when control > len(values)).
//  3. rescale to sum == control and take the ceiling of every entry.
//  4. give back the overshoot one unit per cell, cells chosen by Policy.
//
// Errors: ErrNegativeValue, ErrNaNInf, ErrNegativeControl, ErrNilRand,
// ErrBadOption, ErrInfeasible, ErrInternal.
//
// Complexity: O(n log n).
func Vector(values []float64, control int, opts ...Option) ([]int, error) {
	cfg := gatherOptions(opts)
	if err := validateValues(values); err != nil {
		return nil, err
	}
	if control < 0 {
		return nil, fmt.Errorf("Vector: control %d: %w", control, ErrNegativeControl)
	}
	if err := validatePolicy(cfg); err != nil {
		return nil, err
	}

	return roundVector(values, control, cfg)
}

// VectorPreserveSum rounds values so that the integer total equals their
// own sum. The sum must be within 1e-9 of an integer.
func VectorPreserveSum(values []float64, opts ...Option) ([]int, error) {
	if err := validateValues(values); err != nil {
		return nil, err
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	control, err := ControlFromFloat(sum)
	if err != nil {
		return nil, fmt.Errorf("VectorPreserveSum: %w", err)
	}

	return Vector(values, control, opts...)
}

// ControlFromFloat converts a control that arrived as a float (e.g. from a
// tabular source) into an int. The value must be finite, non-negative and
// within 1e-9 of an integer.
func ControlFromFloat(f float64) (int, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, fmt.Errorf("control %v: %w", f, ErrNaNInf)
	case f < 0:
		return 0, fmt.Errorf("control %v: %w", f, ErrNegativeControl)
	}
	r := math.Round(f)
	if math.Abs(f-r) > snapEps {
		return 0, fmt.Errorf("control %v: %w", f, ErrNonIntegerControl)
	}

	return int(r), nil
}

func validateValues(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value[%d]=%v: %w", i, v, ErrNaNInf)
		}
		if v < 0 {
			return fmt.Errorf("value[%d]=%v: %w", i, v, ErrNegativeValue)
		}
	}

	return nil
}

func validatePolicy(cfg config) error {
	if _, ok := policyNames[cfg.policy]; !ok {
		return fmt.Errorf("%v: %w", cfg.policy, ErrBadOption)
	}
	if cfg.policy == PolicyWeightedRandom && cfg.rng == nil {
		return fmt.Errorf("%v: %w", cfg.policy, ErrNilRand)
	}

	return nil
}

// ceilSnap is the ceiling with values just above an integer snapped down.
func ceilSnap(x float64) int {
	if r := math.Round(x); r > 0 && math.Abs(x-r) <= snapEps {
		return int(r)
	}

	return int(math.Ceil(x))
}

// roundVector assumes validated input.
func roundVector(values []float64, control int, cfg config) ([]int, error) {
	var (
		n   = len(values)
		out = make([]int, n)
		sum float64
		i   int
	)
	if control == 0 {
		return out, nil
	}
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		if control > n {
			return nil, fmt.Errorf("Vector: control %d exceeds %d zero entries: %w", control, n, ErrInfeasible)
		}
		for i = 0; i < control; i++ {
			out[i] = 1
		}

		return out, nil
	}

	scale := 1.0
	if sum != float64(control) {
		scale = float64(control) / sum
	}
	gain := make([]float64, n)
	var total int
	for i = range values {
		s := values[i] * scale
		out[i] = ceilSnap(s)
		gain[i] = float64(out[i]) - s
		total += out[i]
	}

	diff := total - control
	if diff < 0 {
		return nil, fmt.Errorf("Vector: ceiling undershoots control by %d: %w", -diff, ErrInternal)
	}
	if diff > 0 {
		picked, err := pickDecrements(out, gain, diff, cfg)
		if err != nil {
			return nil, err
		}
		for _, j := range picked {
			out[j]--
		}
	}

	return out, verifyVector(out, control)
}

// pickDecrements returns exactly diff distinct indices to decrement.
func pickDecrements(out []int, gain []float64, diff int, cfg config) ([]int, error) {
	var (
		picked  []int
		nonZero = func(i int) bool { return out[i] > 0 }
	)
	switch cfg.policy {
	case PolicyLargest, PolicySmallest:
		scores := make([]float64, len(out))
		for i, v := range out {
			scores[i] = float64(v)
		}
		if cfg.policy == PolicyLargest {
			picked = sample.Largest(scores, diff, nonZero)
		} else {
			picked = sample.Smallest(scores, diff, nonZero)
		}
	case PolicyLargestDifference:
		picked = sample.Largest(gain, diff, nonZero)
	case PolicyWeightedRandom:
		weights := make([]float64, len(gain))
		for i, g := range gain {
			if g > 0 && out[i] > 0 {
				weights[i] = g
			}
		}
		var err error
		if picked, err = sample.WithoutReplacement(cfg.rng, weights, diff); err != nil {
			return nil, fmt.Errorf("Vector: weighted draw: %v: %w", err, ErrInternal)
		}
	default:
		return nil, fmt.Errorf("%v: %w", cfg.policy, ErrBadOption)
	}
	if len(picked) != diff {
		return nil, fmt.Errorf("Vector: %d of %d decrement candidates: %w", len(picked), diff, ErrInternal)
	}

	return picked, nil
}

func verifyVector(out []int, control int) error {
	var total int
	for i, v := range out {
		if v < 0 {
			return fmt.Errorf("Vector: out[%d]=%d: %w", i, v, ErrInternal)
		}
		total += v
	}
	if total != control {
		return fmt.Errorf("Vector: sum %d != control %d: %w", total, control, ErrInternal)
	}

	return nil
}

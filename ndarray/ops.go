// SPDX-License-Identifier: MIT

package ndarray

import (
	"fmt"
	"math"

	"github.com/katalvlaran/integerize/matrix"
)

// Marginal sums out every axis except axis.
//
// Errors: ErrAxis.
// Complexity: O(size·ndim).
func (a *Array) Marginal(axis int) ([]float64, error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, ErrAxis
	}
	out := make([]float64, a.shape[axis])
	a.Walk(func(off int, coords []int) {
		out[coords[axis]] += a.data[off]
	})

	return out, nil
}

// Marginals returns the marginal vector of every axis in one pass.
// Complexity: O(size·ndim).
func (a *Array) Marginals() [][]float64 {
	out := make([][]float64, len(a.shape))
	for k, n := range a.shape {
		out[k] = make([]float64, n)
	}
	a.Walk(func(off int, coords []int) {
		v := a.data[off]
		for k, c := range coords {
			out[k][c] += v
		}
	})

	return out
}

// ScaleAxis multiplies every cell whose coordinate on axis is i by factors[i].
//
// Errors: ErrAxis, ErrDimensionMismatch.
// Complexity: O(size·ndim).
func (a *Array) ScaleAxis(axis int, factors []float64) error {
	if axis < 0 || axis >= len(a.shape) {
		return ErrAxis
	}
	if len(factors) != a.shape[axis] {
		return ErrDimensionMismatch
	}
	a.Walk(func(off int, coords []int) {
		a.data[off] *= factors[coords[axis]]
	})

	return nil
}

// Ceil rounds every cell up in place.
// Complexity: O(size).
func (a *Array) Ceil() {
	for i, v := range a.data {
		a.data[i] = math.Ceil(v)
	}
}

// Sum returns the total of all cells.
func (a *Array) Sum() float64 {
	var s float64
	for _, v := range a.data {
		s += v
	}

	return s
}

// IsIntegral reports whether every cell holds an exact integer value.
func (a *Array) IsIntegral() bool {
	for _, v := range a.data {
		if v != math.Trunc(v) {
			return false
		}
	}

	return true
}

// ValidateNonNegative checks every cell is finite and ≥ 0, reporting the
// coordinates of the first offender.
//
// Errors: ErrNilArray, ErrNaNInf, ErrNegative.
// Complexity: O(size·ndim) on failure, O(size) otherwise.
func ValidateNonNegative(a *Array) error {
	if a == nil {
		return ErrNilArray
	}
	for off, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("cell %v: %w", a.coordsOf(off), ErrNaNInf)
		}
		if v < 0 {
			return fmt.Errorf("cell %v: %w", a.coordsOf(off), ErrNegative)
		}
	}

	return nil
}

// coordsOf allocates the coordinates of off; used only on error paths.
func (a *Array) coordsOf(off int) []int {
	c := make([]int, len(a.shape))
	a.Unravel(off, c)

	return c
}

// FromMatrix copies a matrix.Matrix into a 2-axis Array.
// Complexity: O(r*c).
func FromMatrix(m matrix.Matrix) (*Array, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, err
	}
	a, err := New(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			a.data[i*a.strides[0]+j] = v
		}
	}

	return a, nil
}

// Ints returns the cells truncated to int in row-major order.
// Intended for integral arrays produced by the rounders.
func (a *Array) Ints() []int {
	out := make([]int, len(a.data))
	for i, v := range a.data {
		out[i] = int(v)
	}

	return out
}

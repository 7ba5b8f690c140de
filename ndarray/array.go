// SPDX-License-Identifier: MIT

// Package ndarray - N-dimensional row-major float64 storage.
//
// Purpose:
//   - Same storage discipline as matrix.Dense generalized to N axes:
//     flat buffer, offset = Σ coords[k]*strides[k], last axis fastest.
//   - Safe public accessors (At/Set return errors), deterministic loop order.
//
// Complexity quicksheet:
//   - New/FromSlice/Clone: O(size); At/Set/Offset: O(ndim); Walk: O(size·ndim).
package ndarray

import (
	"fmt"
	"math"
	"strings"
)

// Array is a dense N-dimensional array of float64 in row-major (C) order.
type Array struct {
	shape   []int     // extent per axis, all > 0
	strides []int     // flat step per axis; strides[last] == 1
	data    []float64 // len == product(shape)
}

// New allocates a zero-filled array of the given shape.
//
// Errors: ErrBadShape if shape is empty or any extent ≤ 0.
// Complexity: O(size).
func New(shape ...int) (*Array, error) {
	size, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}

	return &Array{
		shape:   append([]int(nil), shape...),
		strides: stridesOf(shape),
		data:    make([]float64, size),
	}, nil
}

// FromSlice copies data (row-major) into a new array of the given shape.
//
// Errors: ErrBadShape, ErrDimensionMismatch when len(data) != product(shape).
// Complexity: O(size).
func FromSlice(shape []int, data []float64) (*Array, error) {
	a, err := New(shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(a.data) {
		return nil, fmt.Errorf("FromSlice: %d values for %d cells: %w", len(data), len(a.data), ErrDimensionMismatch)
	}
	copy(a.data, data)

	return a, nil
}

// shapeSize validates shape and returns the product of extents.
func shapeSize(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrBadShape
	}
	size := 1
	for _, n := range shape {
		if n <= 0 {
			return 0, ErrBadShape
		}
		size *= n
	}

	return size, nil
}

// stridesOf computes row-major strides for shape.
func stridesOf(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1

	var k int
	for k = len(shape) - 1; k >= 0; k-- {
		st[k] = acc
		acc *= shape[k]
	}

	return st
}

// Shape returns a copy of the extents.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Dim returns the extent of one axis (no bounds check beyond the slice).
func (a *Array) Dim(axis int) int { return a.shape[axis] }

// NDim returns the number of axes.
func (a *Array) NDim() int { return len(a.shape) }

// Size returns the number of cells.
func (a *Array) Size() int { return len(a.data) }

// Raw exposes the backing buffer for hot loops inside this module's
// algorithms. Writes through it mutate the array.
func (a *Array) Raw() []float64 { return a.data }

// Offset converts coordinates to a flat index.
//
// Errors: ErrDimensionMismatch (wrong coordinate count), ErrOutOfRange.
// Complexity: O(ndim).
func (a *Array) Offset(coords []int) (int, error) {
	if len(coords) != len(a.shape) {
		return 0, ErrDimensionMismatch
	}
	off := 0
	for k, c := range coords {
		if c < 0 || c >= a.shape[k] {
			return 0, fmt.Errorf("axis %d index %d: %w", k, c, ErrOutOfRange)
		}
		off += c * a.strides[k]
	}

	return off, nil
}

// Unravel writes the coordinates of flat index off into coords
// (len(coords) must equal NDim). No allocation.
// Complexity: O(ndim).
func (a *Array) Unravel(off int, coords []int) {
	for k := range a.shape {
		coords[k] = off / a.strides[k]
		off %= a.strides[k]
	}
}

// At reads the cell at coords.
func (a *Array) At(coords ...int) (float64, error) {
	off, err := a.Offset(coords)
	if err != nil {
		return 0, err
	}

	return a.data[off], nil
}

// Set writes v at coords. NaN and ±Inf are rejected.
func (a *Array) Set(v float64, coords ...int) error {
	off, err := a.Offset(coords)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNaNInf
	}
	a.data[off] = v

	return nil
}

// Clone returns a deep copy.
// Complexity: O(size).
func (a *Array) Clone() *Array {
	return &Array{
		shape:   append([]int(nil), a.shape...),
		strides: append([]int(nil), a.strides...),
		data:    append([]float64(nil), a.data...),
	}
}

// SameShape reports whether a and b have identical extents.
func (a *Array) SameShape(b *Array) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}
	for k := range a.shape {
		if a.shape[k] != b.shape[k] {
			return false
		}
	}

	return true
}

// Equal reports identical shape and bit-identical values.
func (a *Array) Equal(b *Array) bool {
	if !a.SameShape(b) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}

// Walk visits every cell in row-major order, passing the flat index and
// the live coordinate slice (valid only during the callback).
// Complexity: O(size·ndim) amortized O(size).
func (a *Array) Walk(fn func(off int, coords []int)) {
	coords := make([]int, len(a.shape))
	last := len(a.shape) - 1

	var (
		off int
		k   int
	)
	for off = 0; off < len(a.data); off++ {
		fn(off, coords)
		// odometer increment, last axis fastest
		for k = last; k >= 0; k-- {
			coords[k]++
			if coords[k] < a.shape[k] {
				break
			}
			coords[k] = 0
		}
	}
}

// String renders shape and flat data; intended for debugging.
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ndarray%v", a.shape))
	sb.WriteString(fmt.Sprintf("%v", a.data))

	return sb.String()
}

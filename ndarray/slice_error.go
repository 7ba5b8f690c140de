// SPDX-License-Identifier: MIT

package ndarray

import "fmt"

// SliceError pins a failure to one slice of an array: every cell whose
// coordinate on Axis equals Index. Integerizers wrap infeasibility and
// control errors in it so callers can diagnose the offending input row,
// column or category instead of the algorithm.
type SliceError struct {
	Axis  int
	Index int
	Err   error
}

func (e *SliceError) Error() string {
	return fmt.Sprintf("axis %d index %d: %v", e.Axis, e.Index, e.Err)
}

// Unwrap exposes the underlying sentinel to errors.Is / errors.As.
func (e *SliceError) Unwrap() error { return e.Err }

// AtSlice wraps err with slice coordinates.
func AtSlice(axis, index int, err error) error {
	return &SliceError{Axis: axis, Index: index, Err: err}
}

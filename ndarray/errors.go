// SPDX-License-Identifier: MIT

package ndarray

import "errors"

// Every message is prefixed with "ndarray: ..." (same convention as matrix).
var (
	// ErrBadShape is returned when a shape is empty or has a non-positive extent.
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrOutOfRange indicates that a coordinate is outside the shape.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrDimensionMismatch indicates a data/shape length mismatch or a wrong
	// number of coordinates or factors.
	ErrDimensionMismatch = errors.New("ndarray: dimension mismatch")

	// ErrAxis indicates an axis number outside [0, NDim).
	ErrAxis = errors.New("ndarray: axis out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("ndarray: NaN or Inf encountered")

	// ErrNegative signals a negative cell where allocations must be non-negative.
	ErrNegative = errors.New("ndarray: negative value")

	// ErrNilArray indicates that a nil *Array was passed.
	ErrNilArray = errors.New("ndarray: nil array")
)

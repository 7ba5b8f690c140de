// Package ipf defines the proportional balancer: iterative proportional
// fitting of an N-dimensional non-negative array to one marginal vector
// per axis.
//
// Each iteration visits every axis in order, computes the current marginal
// along it and multiplies every slice by target/current. The ratio is 1
// where the current marginal is zero. Iteration stops once the largest
// |ratio − 1| of an iteration drops below Threshold, or softly at
// MaxIterations (Result.Converged reports which).
//
// Complexity:
//
//	– Time:  O(iterations · ndim · size · ndim)
//	– Space: O(size) for the working copy; the input is never mutated.
//
// Options:
//
//	– Threshold:     stop when max |ratio − 1| < Threshold. Default 0.01.
//	– MaxIterations: soft iteration cap. Default 10000.
//	– Logger:        Debug record per iteration; nil discards.
//
// Errors (sentinel):
//
//	– ErrInvalidInput umbrella, refined by ErrDimensionMismatch,
//	  ErrNegativeValue, ErrNaNInf, ErrInconsistentMarginals, ErrZeroSlice
//	  and ErrBadOption.
package ipf

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/integerize/ndarray"
)

// ErrInvalidInput is the umbrella for every validation failure.
var ErrInvalidInput = errors.New("ipf: invalid input")

// Sentinel errors returned by Balance.
var (
	// ErrDimensionMismatch indicates a marginal count or length that does not
	// match the array shape.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidInput)

	// ErrNegativeValue indicates a negative cell or marginal entry.
	ErrNegativeValue = fmt.Errorf("%w: negative value", ErrInvalidInput)

	// ErrNaNInf indicates a NaN or ±Inf cell or marginal entry.
	ErrNaNInf = fmt.Errorf("%w: NaN or Inf value", ErrInvalidInput)

	// ErrInconsistentMarginals indicates marginals whose totals differ.
	ErrInconsistentMarginals = fmt.Errorf("%w: marginal totals differ", ErrInvalidInput)

	// ErrZeroSlice indicates a non-zero target over a slice whose data is all
	// zero; no scaling can reach it. Returned wrapped in *ndarray.SliceError.
	ErrZeroSlice = fmt.Errorf("%w: non-zero target over all-zero slice", ErrInvalidInput)

	// ErrBadOption indicates a negative or NaN Threshold or a non-positive
	// MaxIterations.
	ErrBadOption = fmt.Errorf("%w: bad option", ErrInvalidInput)
)

// Defaults.
const (
	DefaultThreshold     = 0.01
	DefaultMaxIterations = 10000
)

// totalTolerance is the relative tolerance when comparing marginal totals.
const totalTolerance = 1e-9

// Options configures Balance.
type Options struct {
	Threshold     float64      // stop when max |ratio−1| < Threshold
	MaxIterations int          // soft cap on iterations
	Logger        *slog.Logger // nil discards
}

// DefaultOptions returns Options initialized with the defaults above.
func DefaultOptions() Options {
	return Options{
		Threshold:     DefaultThreshold,
		MaxIterations: DefaultMaxIterations,
	}
}

// Result is the outcome of Balance.
type Result struct {
	// Data is the balanced copy of the input.
	Data *ndarray.Array

	// Iterations is the number of full passes over all axes.
	Iterations int

	// MaxDeviation is max |ratio − 1| of the last iteration.
	MaxDeviation float64

	// Converged is false when MaxIterations was reached first.
	Converged bool
}

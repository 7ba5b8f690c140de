package ndround

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the umbrella for every validation failure raised
// before any rounding starts.
var ErrInvalidInput = errors.New("ndround: invalid input")

var (
	// ErrDimensionMismatch indicates marginals that do not match the shape.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidInput)

	// ErrNegativeValue indicates a negative cell.
	ErrNegativeValue = fmt.Errorf("%w: negative value", ErrInvalidInput)

	// ErrNaNInf indicates a NaN or ±Inf cell.
	ErrNaNInf = fmt.Errorf("%w: NaN or Inf value", ErrInvalidInput)

	// ErrNegativeControl indicates a negative marginal entry.
	ErrNegativeControl = fmt.Errorf("%w: negative control", ErrInvalidInput)

	// ErrInconsistentControls indicates marginals whose totals differ.
	ErrInconsistentControls = fmt.Errorf("%w: marginal totals differ", ErrInvalidInput)

	// ErrNilRand indicates a missing random generator.
	ErrNilRand = fmt.Errorf("%w: nil random generator", ErrInvalidInput)

	// ErrBadOption indicates an out-of-range option value.
	ErrBadOption = fmt.Errorf("%w: bad option", ErrInvalidInput)
)

// ErrInfeasible is returned when no rounding of the data can meet the
// marginals: a slice whose ceiled sum is below its target, a slice whose
// error cannot be absorbed by its cells, or an exact solve with no
// solution. Wrapped in *ndarray.SliceError when a slice is to blame.
var ErrInfeasible = errors.New("ndround: infeasible marginal controls")

// ErrDeadEnd is returned by the stochastic rounder when error remains but
// no cell can be decremented. The safe hybrid rounder recovers from it.
var ErrDeadEnd = errors.New("ndround: stochastic rounding reached a dead end")

// ErrSolverLimit is returned when the exact solver exhausts Options.MaxNodes
// before proving feasibility or infeasibility.
var ErrSolverLimit = errors.New("ndround: exact solver node limit reached")

// ErrInvalidOutput is returned by CheckOutput for an array that is not a
// valid rounding of the marginals.
var ErrInvalidOutput = errors.New("ndround: output does not match marginals")

// ErrInternal signals a violated post-condition (a bug, not bad input).
var ErrInternal = errors.New("ndround: internal consistency check failed")

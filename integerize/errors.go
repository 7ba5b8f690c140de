package integerize

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the umbrella for every validation failure raised
// before any rounding starts. Specific sentinels below wrap it, so
// errors.Is(err, ErrInvalidInput) matches all of them.
var ErrInvalidInput = errors.New("integerize: invalid input")

var (
	// ErrNegativeValue is returned when an allocation entry is negative.
	ErrNegativeValue = fmt.Errorf("%w: negative value", ErrInvalidInput)

	// ErrNaNInf is returned when an allocation entry is NaN or ±Inf.
	ErrNaNInf = fmt.Errorf("%w: NaN or Inf value", ErrInvalidInput)

	// ErrNegativeControl is returned when a control total is negative.
	ErrNegativeControl = fmt.Errorf("%w: negative control", ErrInvalidInput)

	// ErrNonIntegerControl is returned when a control (or a preserved sum)
	// is not within tolerance of an integer.
	ErrNonIntegerControl = fmt.Errorf("%w: non-integer control", ErrInvalidInput)

	// ErrDimensionMismatch is returned when control vectors do not match
	// the matrix shape.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidInput)

	// ErrInconsistentControls is returned when row and column control
	// totals are incompatible with the requested mode.
	ErrInconsistentControls = fmt.Errorf("%w: inconsistent marginal controls", ErrInvalidInput)

	// ErrNilRand is returned when a stochastic policy has no generator.
	ErrNilRand = fmt.Errorf("%w: nil random generator", ErrInvalidInput)

	// ErrBadOption is returned for an unknown policy or mode.
	ErrBadOption = fmt.Errorf("%w: unknown option value", ErrInvalidInput)
)

// ErrInfeasible is returned when the controls cannot be met by the data
// support, including exhausting every relaxation tier in Biproportional.
var ErrInfeasible = errors.New("integerize: infeasible marginal controls")

// ErrInternal signals a violated post-condition. It indicates a bug, not
// bad input.
var ErrInternal = errors.New("integerize: internal consistency check failed")

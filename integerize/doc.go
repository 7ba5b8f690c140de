// Package integerize provides controlled integerization in one and two
// dimensions: rounding non-negative continuous allocations to non-negative
// integers that sum exactly to authoritative controls.
//
// Overview:
//
//   - Vector rounds a vector to a scalar control. Every entry is rescaled to
//     the control, rounded up, and the overshoot is given back one unit per
//     cell. Which cells give it back is a Policy.
//   - Biproportional rounds a matrix to row and column controls. Columns are
//     rounded with Vector; row deviations are then repaired through a
//     per-column adjustment ledger guarded by a Relaxation state machine.
//
// Policies (Vector):
//
//   - PolicyLargestDifference (default): cells that gained most from the ceiling.
//   - PolicyLargest: largest rounded values.
//   - PolicySmallest: smallest non-zero rounded values.
//   - PolicyWeightedRandom: drawn without replacement ∝ gain; needs WithRand.
//
// Ties always go to the lower index, so every policy except the random one
// is fully deterministic. The random policy is deterministic for a given
// generator state; the package never seeds a generator itself.
//
// Relaxation tiers (Biproportional):
//
//	Strict → Neighborhood(k) → Unrestricted → Infeasible
//
// A unit moved into a row must land on a non-zero cell (Strict), next to a
// non-zero cell within k columns (Neighborhood), or anywhere (Unrestricted).
// The tier advances only after a pass that moved nothing and never resets.
//
// Modes (Biproportional):
//
//   - ModeExact: row sums equal the row controls.
//   - ModeLessThan: row sums do not exceed the row controls.
//
// Column sums always equal the column controls.
//
// Error handling (sentinel errors):
//
//   - ErrInvalidInput and its refinements (ErrNegativeValue, ErrNaNInf,
//     ErrNegativeControl, ErrNonIntegerControl, ErrDimensionMismatch,
//     ErrInconsistentControls, ErrNilRand, ErrBadOption) are raised before
//     any rounding.
//   - ErrInfeasible: the controls cannot be met; wrapped in
//     *ndarray.SliceError when a row or column is to blame.
//   - ErrInternal: a post-condition failed (a bug, not bad input).
//
// Example:
//
//	out, err := integerize.Vector([]float64{0.3, 0.3, 0.4}, 1)
//	// out == [0 0 1]
package integerize

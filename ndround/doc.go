// Package ndround rounds N-dimensional non-negative arrays to integers whose
// sums along every axis match integer marginals ("controls").
//
// All three rounders start from the element-wise ceiling, so every slice
// sum is at or above its target, and then remove the surplus (the rounding
// error) by decrementing cells:
//
//   - Stochastic: randomized batches, weighted by how much error the
//     cell's slices still carry. Fast on large arrays; can dead-end.
//   - Exact: solves for all decrements at once. Max-flow for two axes,
//     branch-and-bound for more. Complete within the per-cell bound
//     Options.MaxCellAdjustment.
//   - Hybrid: Stochastic down to Options.Threshold, then Exact. With
//     Options.Safe every step is checkpointed (see package checkpoint) and
//     a failure rolls back to an earlier state.
//
// A slice whose ceiled sum is already below target can never be fixed and
// is reported up front as ErrInfeasible inside an *ndarray.SliceError.
//
// Determinism: results depend only on the inputs, the options and the
// state of the supplied *rand.Rand; the package never seeds a generator.
//
// RoundingError and CheckOutput expose the per-slice error of an integral
// array and a validity check for results.
package ndround

// Package matrix offers the two-dimensional storage used by the
// biproportional integerizer.
//
// The matrix package provides:
//
//   - Matrix, a small mutable interface (Rows, Cols, At, Set, Clone).
//   - Dense, a row-major float64 implementation with bounds-checked
//     accessors and a strict finite-value policy.
//   - RowSums / ColSums marginal helpers.
//   - Validators (ValidateNotNil, ValidateVecLen, ValidateNonNegative)
//     returning sentinel errors matched with errors.Is.
//
// See the examples in this package for usage patterns.
package matrix

package integerize

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/integerize/matrix"
	"github.com/katalvlaran/integerize/ndarray"
)

// Axis numbers used in SliceError for two-dimensional inputs.
const (
	AxisRows = 0
	AxisCols = 1
)

// Biproportional rounds a non-negative matrix to integers whose column sums
// equal colControls and whose row sums equal (ModeExact) or do not exceed
// (ModeLessThan) rowControls.
//
// Every column is first rounded independently with Vector and PolicyLargest.
// Row deviations are then repaired one unit at a time through a per-column
// ledger: surplus rows give a unit back to a column (ledger++), deficit
// rows take a unit from a column that has one to give (ledger--). A pass
// that moves nothing advances the Relaxation tier; exhausting all tiers is
// ErrInfeasible.
//
// Options: WithMode, WithNeighborhood, WithLogger.
//
// Errors: ErrInvalidInput family (before any rounding), ErrInfeasible
// (possibly wrapped in *ndarray.SliceError), ErrInternal.
//
// Complexity: O(r*c log r) for the column pass; every repair pass is
// O(r*c) and strictly reduces Σ|row deviation|.
func Biproportional(m matrix.Matrix, rowControls, colControls []int, opts ...Option) ([][]int, error) {
	cfg := gatherOptions(opts)
	if err := validateBiproportional(m, rowControls, colControls, cfg.mode); err != nil {
		return nil, err
	}

	var (
		rows, cols = m.Rows(), m.Cols()
		x          = make([][]int, rows)
		col        = make([]float64, rows)
		i, j       int
		err        error
	)
	for i = range x {
		x[i] = make([]int, cols)
	}

	colCfg := cfg
	colCfg.policy = PolicyLargest
	dense, _ := m.(*matrix.Dense)
	for j = 0; j < cols; j++ {
		if dense != nil {
			if col, err = dense.Column(j); err != nil {
				return nil, err
			}
		} else {
			for i = 0; i < rows; i++ {
				if col[i], err = m.At(i, j); err != nil {
					return nil, err
				}
			}
		}
		rounded, err := roundVector(col, colControls[j], colCfg)
		if err != nil {
			return nil, ndarray.AtSlice(AxisCols, j, err)
		}
		for i = 0; i < rows; i++ {
			x[i][j] = rounded[i]
		}
	}

	if err = reallocate(x, rowControls, cfg); err != nil {
		return nil, err
	}
	if err = verifyBiproportional(x, rowControls, colControls, cfg.mode); err != nil {
		return nil, err
	}

	return x, nil
}

// reallocate runs the ledger passes in place.
func reallocate(x [][]int, rowControls []int, cfg config) error {
	if len(x) == 0 {
		return nil
	}

	var (
		cols    = len(x[0])
		ledger  = make([]int, cols)
		dev     = rowDeviations(x, rowControls)
		relax   = NewRelaxation(cfg.neighborhood)
		pass    int
		changes int
		i, j    int
	)
	for rowsViolated(dev, cfg.mode) || anyNonZero(ledger) {
		pass++
		changes = 0

		for i = range x {
			if dev[i] <= 0 {
				continue
			}
			if j = pickDecrement(x[i], ledger); j >= 0 {
				x[i][j]--
				ledger[j]++
				changes++
			}
		}

		for i = range x {
			if dev[i] >= 0 {
				continue
			}
			if j = pickIncrement(x[i], ledger, relax); j >= 0 {
				x[i][j]++
				ledger[j]--
				changes++
			}
		}

		cfg.logger.Debug("biproportional pass",
			"pass", pass, "tier", relax.Tier().String(), "moved", changes)

		if changes == 0 {
			tier := relax.Advance()
			cfg.logger.Debug("biproportional relaxation", "pass", pass, "tier", tier.String())
			if tier == TierInfeasible {
				return fmt.Errorf("Biproportional: cannot balance after %d passes, ledger %v: %w",
					pass, ledger, ErrInfeasible)
			}
		}

		dev = rowDeviations(x, rowControls)
	}

	return nil
}

// pickDecrement returns the column of the smallest non-zero cell, preferring
// columns with an empty ledger; -1 if the row is all zero.
func pickDecrement(row, ledger []int) int {
	best, bestFree := -1, -1
	for j, v := range row {
		if v <= 0 {
			continue
		}
		if best < 0 || v < row[best] {
			best = j
		}
		if ledger[j] == 0 && (bestFree < 0 || v < row[bestFree]) {
			bestFree = j
		}
	}
	if bestFree >= 0 {
		return bestFree
	}

	return best
}

// pickIncrement returns the column of the largest cell that has a unit in
// the ledger and is eligible under the current tier; -1 if none.
func pickIncrement(row, ledger []int, relax *Relaxation) int {
	best := -1
	for j, v := range row {
		if ledger[j] <= 0 || !relax.Eligible(row, j) {
			continue
		}
		if best < 0 || v > row[best] {
			best = j
		}
	}

	return best
}

func rowDeviations(x [][]int, rowControls []int) []int {
	dev := make([]int, len(x))
	for i, row := range x {
		for _, v := range row {
			dev[i] += v
		}
		dev[i] -= rowControls[i]
	}

	return dev
}

func rowsViolated(dev []int, mode Mode) bool {
	for _, d := range dev {
		if d > 0 || (mode == ModeExact && d < 0) {
			return true
		}
	}

	return false
}

func anyNonZero(xs []int) bool {
	for _, v := range xs {
		if v != 0 {
			return true
		}
	}

	return false
}

func validateBiproportional(m matrix.Matrix, rowControls, colControls []int, mode Mode) error {
	if err := matrix.ValidateNonNegative(m); err != nil {
		switch {
		case errors.Is(err, matrix.ErrNaNInf):
			return fmt.Errorf("%w: %w", ErrNaNInf, err)
		case errors.Is(err, matrix.ErrNegative):
			return fmt.Errorf("%w: %w", ErrNegativeValue, err)
		default:
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	if mode != ModeExact && mode != ModeLessThan {
		return fmt.Errorf("%v: %w", mode, ErrBadOption)
	}
	if err := matrix.ValidateVecLen(rowControls, m.Rows()); err != nil {
		return fmt.Errorf("row controls: %d for %d rows: %w", len(rowControls), m.Rows(), ErrDimensionMismatch)
	}
	if err := matrix.ValidateVecLen(colControls, m.Cols()); err != nil {
		return fmt.Errorf("column controls: %d for %d columns: %w", len(colControls), m.Cols(), ErrDimensionMismatch)
	}

	var rowTotal, colTotal int
	for i, c := range rowControls {
		if c < 0 {
			return ndarray.AtSlice(AxisRows, i, ErrNegativeControl)
		}
		rowTotal += c
	}
	for j, c := range colControls {
		if c < 0 {
			return ndarray.AtSlice(AxisCols, j, ErrNegativeControl)
		}
		colTotal += c
	}

	switch {
	case mode == ModeExact && rowTotal != colTotal:
		return fmt.Errorf("row total %d != column total %d: %w", rowTotal, colTotal, ErrInconsistentControls)
	case mode == ModeLessThan && colTotal > rowTotal:
		return fmt.Errorf("column total %d > row total %d: %w", colTotal, rowTotal, ErrInconsistentControls)
	}

	return nil
}

func verifyBiproportional(x [][]int, rowControls, colControls []int, mode Mode) error {
	colSums := make([]int, len(colControls))
	for i, row := range x {
		var sum int
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("Biproportional: x[%d][%d]=%d: %w", i, j, v, ErrInternal)
			}
			sum += v
			colSums[j] += v
		}
		if sum > rowControls[i] || (mode == ModeExact && sum != rowControls[i]) {
			return fmt.Errorf("Biproportional: row %d sums to %d, control %d: %w", i, sum, rowControls[i], ErrInternal)
		}
	}
	for j, s := range colSums {
		if s != colControls[j] {
			return fmt.Errorf("Biproportional: column %d sums to %d, control %d: %w", j, s, colControls[j], ErrInternal)
		}
	}

	return nil
}

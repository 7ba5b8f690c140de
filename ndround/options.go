package ndround

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/integerize/checkpoint"
	"github.com/katalvlaran/integerize/flow"
)

// Defaults.
const (
	// DefaultFraction is the share of the remaining error drawn per
	// stochastic step.
	DefaultFraction = 0.5

	// DefaultThreshold is the remaining error at which Hybrid hands off to
	// the exact solver.
	DefaultThreshold = 1000

	// DefaultMaxCellAdjustment bounds how many units the exact solver may
	// take from one cell.
	DefaultMaxCellAdjustment = 3
)

// Options configures Stochastic, Exact and Hybrid.
//   - Fraction: share of the remaining error drawn per stochastic step, in (0,1].
//   - Threshold: Hybrid hands off to the exact solver once the remaining
//     error is ≤ Threshold. Stochastic always runs to zero error.
//   - Safe: Hybrid snapshots every step and rolls back on failure.
//   - Checkpoints: snapshot store for Safe; nil uses a MemoryStore.
//   - MaxCellAdjustment: per-cell bound of the exact solver (1 = binary).
//   - MaxNodes: branch-and-bound node budget; 0 = unlimited.
//   - FlowAlgorithm: max-flow strategy for two-axis exact solves.
//   - Logger: Debug per step, Info on hand-off and rollback; nil discards.
type Options struct {
	Fraction          float64
	Threshold         int
	Safe              bool
	Checkpoints       checkpoint.Store
	MaxCellAdjustment int
	MaxNodes          int
	FlowAlgorithm     flow.Algorithm
	Logger            *slog.Logger
}

// DefaultOptions returns Options initialized with the defaults above.
//
// Defaults:
//   - Fraction:          0.5
//   - Threshold:         1000
//   - Safe:              false
//   - Checkpoints:       nil (MemoryStore when Safe)
//   - MaxCellAdjustment: 3
//   - MaxNodes:          0 (unlimited)
//   - FlowAlgorithm:     flow.Dinic
func DefaultOptions() Options {
	return Options{
		Fraction:          DefaultFraction,
		Threshold:         DefaultThreshold,
		MaxCellAdjustment: DefaultMaxCellAdjustment,
		FlowAlgorithm:     flow.Dinic,
	}
}

func (o *Options) validate() error {
	switch {
	case math.IsNaN(o.Fraction) || o.Fraction <= 0 || o.Fraction > 1:
		return fmt.Errorf("Fraction %v not in (0,1]: %w", o.Fraction, ErrBadOption)
	case o.Threshold < 0:
		return fmt.Errorf("Threshold %d: %w", o.Threshold, ErrBadOption)
	case o.MaxCellAdjustment < 1:
		return fmt.Errorf("MaxCellAdjustment %d: %w", o.MaxCellAdjustment, ErrBadOption)
	case o.MaxNodes < 0:
		return fmt.Errorf("MaxNodes %d: %w", o.MaxNodes, ErrBadOption)
	case o.FlowAlgorithm < flow.Dinic || o.FlowAlgorithm > flow.FordFulkerson:
		return fmt.Errorf("FlowAlgorithm %v: %w", o.FlowAlgorithm, ErrBadOption)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return nil
}

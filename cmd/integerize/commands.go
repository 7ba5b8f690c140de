package main

import (
	"fmt"

	"github.com/katalvlaran/integerize/checkpoint"
	"github.com/katalvlaran/integerize/flow"
	"github.com/katalvlaran/integerize/integerize"
	"github.com/katalvlaran/integerize/ipf"
	"github.com/katalvlaran/integerize/matrix"
	"github.com/katalvlaran/integerize/ndarray"
	"github.com/katalvlaran/integerize/ndround"
	"github.com/katalvlaran/integerize/randdata"
)

// VectorCmd rounds {"values": [...], "control": n}.
type VectorCmd struct {
	Input       string `arg:"" optional:"" default:"-" help:"JSON input file ('-' for stdin)."`
	Policy      string `default:"largest-difference" enum:"largest-difference,largest,smallest,weighted-random" env:"INTEGERIZE_POLICY" help:"Which cells give back the overshoot (${enum})."`
	PreserveSum bool   `name:"preserve-sum" help:"Use the rounded sum of the values as the control."`
}

type vectorInput struct {
	Values  []float64 `json:"values"`
	Control *float64  `json:"control,omitempty"`
}

func (c *VectorCmd) Run(env *runEnv) error {
	var in vectorInput
	if err := readJSON(env, c.Input, &in); err != nil {
		return err
	}
	policy, err := integerize.ParsePolicy(c.Policy)
	if err != nil {
		return err
	}
	opts := []integerize.Option{
		integerize.WithPolicy(policy),
		integerize.WithRand(env.rng()),
		integerize.WithLogger(env.log),
	}

	var out []int
	switch {
	case c.PreserveSum:
		out, err = integerize.VectorPreserveSum(in.Values, opts...)
	case in.Control == nil:
		return fmt.Errorf("input has no control (use --preserve-sum to derive it)")
	default:
		var control int
		if control, err = integerize.ControlFromFloat(*in.Control); err != nil {
			return err
		}
		out, err = integerize.Vector(in.Values, control, opts...)
	}
	if err != nil {
		return err
	}
	env.log.Info("vector rounded", "cells", len(out), "policy", policy)

	return writeJSON(env, map[string]any{"result": out})
}

// MatrixCmd rounds {"values": [[...]], "rows": [...], "cols": [...]}.
type MatrixCmd struct {
	Input        string `arg:"" optional:"" default:"-" help:"JSON input file ('-' for stdin)."`
	Mode         string `default:"exact" enum:"exact,less-than" env:"INTEGERIZE_MODE" help:"Row control mode (${enum})."`
	Neighborhood int    `default:"1" env:"INTEGERIZE_NEIGHBORHOOD" help:"Column window of the neighborhood relaxation tier."`
}

type matrixInput struct {
	Values [][]float64 `json:"values"`
	Rows   []int       `json:"rows"`
	Cols   []int       `json:"cols"`
}

func (c *MatrixCmd) Run(env *runEnv) error {
	var in matrixInput
	if err := readJSON(env, c.Input, &in); err != nil {
		return err
	}
	mode, err := integerize.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if c.Neighborhood < 0 {
		return fmt.Errorf("--neighborhood %d must be non-negative", c.Neighborhood)
	}
	m, err := matrix.NewDenseFrom(in.Values)
	if err != nil {
		return fmt.Errorf("input matrix: %w", err)
	}

	if rs, err := matrix.RowSums(m); err == nil {
		cs, _ := matrix.ColSums(m)
		env.log.Debug("matrix input", "row_sums", rs, "col_sums", cs, "rows", in.Rows, "cols", in.Cols)
	}

	out, err := integerize.Biproportional(m, in.Rows, in.Cols,
		integerize.WithMode(mode),
		integerize.WithNeighborhood(c.Neighborhood),
		integerize.WithLogger(env.log))
	if err != nil {
		return err
	}
	env.log.Info("matrix rounded", "rows", len(out), "mode", mode)

	return writeJSON(env, map[string]any{"result": out})
}

// BalanceCmd fits {"shape", "data", "marginals": [[float...]...]}.
type BalanceCmd struct {
	Input         string  `arg:"" optional:"" default:"-" help:"JSON input file ('-' for stdin)."`
	Threshold     float64 `default:"0.01" help:"Stop when every scaling ratio is within this of 1."`
	MaxIterations int     `name:"max-iterations" default:"10000" help:"Soft iteration cap."`
}

type balanceInput struct {
	arrayDoc
	Marginals [][]float64 `json:"marginals"`
}

func (c *BalanceCmd) Run(env *runEnv) error {
	var in balanceInput
	if err := readJSON(env, c.Input, &in); err != nil {
		return err
	}
	a, err := in.array()
	if err != nil {
		return err
	}
	res, err := ipf.Balance(a, in.Marginals, ipf.Options{
		Threshold:     c.Threshold,
		MaxIterations: c.MaxIterations,
		Logger:        env.log,
	})
	if err != nil {
		return err
	}
	if !res.Converged {
		env.log.Warn("balance did not converge", "max_deviation", res.MaxDeviation)
	}

	return writeJSON(env, map[string]any{
		"shape":         res.Data.Shape(),
		"data":          res.Data.Raw(),
		"iterations":    res.Iterations,
		"converged":     res.Converged,
		"max_deviation": res.MaxDeviation,
	})
}

// RoundCmd rounds {"shape", "data", "marginals": [[int...]...]}.
type RoundCmd struct {
	Input             string  `arg:"" optional:"" default:"-" help:"JSON input file ('-' for stdin)."`
	Method            string  `default:"hybrid" enum:"stochastic,exact,hybrid" env:"INTEGERIZE_METHOD" help:"Rounding method (${enum})."`
	Fraction          float64 `default:"0.5" help:"Share of the remaining error drawn per stochastic step."`
	Threshold         int     `default:"1000" help:"Remaining error at which hybrid hands off to the exact solver."`
	Safe              bool    `help:"Checkpoint every stochastic step and roll back on failure."`
	MaxCellAdjustment int     `name:"max-cell-adjustment" default:"3" help:"Units the exact solver may take from one cell."`
	MaxNodes          int     `name:"max-nodes" default:"0" help:"Branch-and-bound node budget (0 = unlimited)."`
	FlowAlgorithm     string  `name:"flow-algorithm" default:"dinic" enum:"dinic,edmonds-karp,ford-fulkerson" help:"Max-flow strategy for two-axis exact solves (${enum})."`
	CheckpointDB      string  `name:"checkpoint-db" type:"path" env:"INTEGERIZE_CHECKPOINT_DB" help:"SQLite file for safe-mode checkpoints (default in memory)."`
}

type roundInput struct {
	arrayDoc
	Marginals [][]int `json:"marginals"`
}

func (c *RoundCmd) Run(env *runEnv) error {
	var in roundInput
	if err := readJSON(env, c.Input, &in); err != nil {
		return err
	}
	a, err := in.array()
	if err != nil {
		return err
	}

	opts := ndround.DefaultOptions()
	opts.Fraction = c.Fraction
	opts.Threshold = c.Threshold
	opts.Safe = c.Safe
	opts.MaxCellAdjustment = c.MaxCellAdjustment
	opts.MaxNodes = c.MaxNodes
	if opts.FlowAlgorithm, err = flow.ParseAlgorithm(c.FlowAlgorithm); err != nil {
		return err
	}
	opts.Logger = env.log
	if c.CheckpointDB != "" {
		store, err := checkpoint.OpenSQLite(env.ctx, c.CheckpointDB)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Checkpoints = store
		env.log.Debug("checkpoint store", "path", c.CheckpointDB, "driver", checkpoint.DriverName())
	}

	var out *ndarray.Array
	switch c.Method {
	case "stochastic":
		out, err = ndround.Stochastic(a, in.Marginals, env.rng(), opts)
	case "exact":
		out, err = ndround.Exact(env.ctx, a, in.Marginals, opts)
	default:
		out, err = ndround.Hybrid(env.ctx, a, in.Marginals, env.rng(), opts)
	}
	if err != nil {
		return err
	}
	errs, err := ndround.RoundingError(out, in.Marginals)
	if err != nil {
		return err
	}
	var remaining int
	for _, e := range errs[0] {
		remaining += e
	}
	env.log.Info("array rounded", "method", c.Method, "cells", out.Size(), "remaining_error", remaining)

	return writeJSON(env, map[string]any{
		"shape":           out.Shape(),
		"data":            out.Ints(),
		"remaining_error": remaining,
	})
}

// GenerateCmd writes a synthetic problem in the format RoundCmd reads.
type GenerateCmd struct {
	Kind         string  `default:"uniform" enum:"uniform,low-skewed,sparse" help:"Data distribution (${enum})."`
	Shape        []int   `required:"" sep:"," help:"Array shape, e.g. 4,3,2."`
	LowThreshold float64 `name:"low-threshold" default:"0.1" help:"low-skewed: values are pushed below this."`
	Fraction     float64 `default:"-1" help:"low-skewed: share of cells pushed low (default 0.8); sparse: share of cells zeroed (default 0.7)."`
}

func (c *GenerateCmd) Run(env *runEnv) error {
	var (
		p   randdata.Problem
		err error
	)
	switch c.Kind {
	case "low-skewed":
		p, err = randdata.LowSkewed(env.rng(), c.Shape, c.LowThreshold, c.fraction(randdata.DefaultLowFraction))
	case "sparse":
		p, err = randdata.Sparse(env.rng(), c.Shape, c.fraction(randdata.DefaultSparseFraction))
	default:
		p, err = randdata.Uniform(env.rng(), c.Shape)
	}
	if err != nil {
		return err
	}
	if !p.Converged {
		env.log.Warn("generated data did not fully converge", "kind", c.Kind)
	}
	if !p.Reachable {
		env.log.Warn("generated problem has a slice below its target after ceiling", "kind", c.Kind)
	}
	env.log.Info("problem generated", "kind", c.Kind, "shape", c.Shape)

	return writeJSON(env, roundInput{
		arrayDoc:  arrayDoc{Shape: p.Data.Shape(), Data: p.Data.Raw()},
		Marginals: p.Marginals,
	})
}

func (c *GenerateCmd) fraction(def float64) float64 {
	if c.Fraction < 0 {
		return def
	}

	return c.Fraction
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *runEnv) error {
	_, err := fmt.Fprintf(env.out, "integerize %s (sqlite driver %s, %s)\n",
		version, checkpoint.DriverName(), checkpoint.DriverType())

	return err
}

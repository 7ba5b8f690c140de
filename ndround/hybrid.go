package ndround

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/integerize/checkpoint"
	"github.com/katalvlaran/integerize/ndarray"
)

// Hybrid runs stochastic steps until the remaining error is ≤ opts.Threshold and
// finishes with Exact on the partially rounded array.
//
// With opts.Safe the state before every stochastic step is saved to
// opts.Checkpoints (a MemoryStore when nil) under a fresh session. After a
// stochastic dead end, or when the exact finish fails, the exact solver is
// retried from successively older snapshots, newest first. The session is
// cleared before Hybrid returns.
//
// Errors: ErrInvalidInput family, ErrInfeasible, ErrDeadEnd (unsafe mode
// only), ErrSolverLimit, checkpoint errors, ctx.Err(), ErrInternal. When
// every snapshot fails in safe mode the error wraps ErrInfeasible and the
// last exact failure.
func Hybrid(ctx context.Context, a *ndarray.Array, marginals [][]int, rng *rand.Rand, opts Options) (*ndarray.Array, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := validateProblem(a, marginals); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if ctx == nil {
		ctx = context.Background()
	}

	x := a.Clone()
	x.Ceil()
	run, err := newStochasticRun(x, marginals, opts)
	if err != nil {
		return nil, err
	}
	if opts.Safe {
		return hybridSafe(ctx, run, marginals, rng, opts)
	}

	for run.total > opts.Threshold {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if _, err = run.advance(rng); err != nil {
			return nil, err
		}
	}
	opts.Logger.Info("hybrid hand-off", "steps", run.step, "remaining", run.total)
	if err = solveExact(ctx, run.x, marginals, opts); err != nil {
		return nil, err
	}

	return run.x, nil
}

func hybridSafe(ctx context.Context, run *stochasticRun, marginals [][]int, rng *rand.Rand, opts Options) (*ndarray.Array, error) {
	store := opts.Checkpoints
	if store == nil {
		mem := checkpoint.NewMemoryStore()
		defer mem.Close()
		store = mem
	}
	session := checkpoint.NewSession()
	log := opts.Logger.With("session", session)
	defer func() {
		if err := store.Clear(context.WithoutCancel(ctx), session); err != nil {
			log.Warn("checkpoint cleanup failed", "err", err)
		}
	}()

	for run.total > opts.Threshold {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := store.Save(ctx, session, run.step, run.x); err != nil {
			return nil, err
		}
		if _, err := run.advance(rng); err != nil {
			if !errors.Is(err, ErrDeadEnd) {
				return nil, err
			}
			log.Info("stochastic dead end", "step", run.step, "remaining", run.total)
			break
		}
	}
	// the current state is the newest candidate; on a dead end it replaces
	// the identical snapshot taken before the failed step
	if err := store.Save(ctx, session, run.step, run.x); err != nil {
		return nil, err
	}

	steps, err := store.Steps(ctx, session)
	if err != nil {
		return nil, err
	}
	var lastErr error
	for i := len(steps) - 1; i >= 0; i-- {
		snap, err := store.Load(ctx, session, steps[i])
		if err != nil {
			return nil, err
		}
		err = solveExact(ctx, snap, marginals, opts)
		if err == nil {
			log.Info("hybrid hand-off", "step", steps[i], "rollbacks", len(steps)-1-i)
			return snap, nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		lastErr = err
		log.Info("exact finish failed, rolling back", "step", steps[i], "err", err)
	}

	return nil, fmt.Errorf("%w: no snapshot could be completed: %w", ErrInfeasible, lastErr)
}

package ndround

import (
	"context"
	"fmt"

	"github.com/katalvlaran/integerize/flow"
)

// solveFlow solves a two-axis residual as a transportation problem:
// source → row (cap row error) → column (cap cell bound) → sink (cap column
// error). A saturating flow is a valid set of decrements.
func (p *residual) solveFlow(ctx context.Context, total int, opts Options) ([]int, error) {
	const (
		source = 0
		sink   = 1
	)
	nw, err := flow.NewNetwork(2 + len(p.need))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	rows := p.base[1]
	for id, need := range p.need {
		if need == 0 {
			continue
		}
		if id < rows {
			_, err = nw.AddEdge(source, 2+id, int64(need))
		} else {
			_, err = nw.AddEdge(2+id, sink, int64(need))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	edges := make([]int, len(p.vars))
	for i, v := range p.vars {
		if edges[i], err = nw.AddEdge(2+v.slices[0], 2+v.slices[1], int64(v.bound)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	fo := flow.DefaultOptions()
	fo.Algorithm = opts.FlowAlgorithm
	fo.Logger = opts.Logger
	value, err := nw.MaxFlow(ctx, source, sink, fo)
	if err != nil {
		return nil, err
	}
	if value != int64(total) {
		return nil, fmt.Errorf("%w: only %d of %d units can be removed", ErrInfeasible, value, total)
	}

	dec := make([]int, len(p.vars))
	for i, id := range edges {
		f, ferr := nw.Flow(id)
		if ferr != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, ferr)
		}
		dec[i] = int(f)
	}

	return dec, nil
}

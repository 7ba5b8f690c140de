package ndround

import (
	"context"
	"fmt"
)

// ctxCheckEvery is how many search nodes pass between context checks.
const ctxCheckEvery = 4096

// bnb is the state of one branch-and-bound search.
type bnb struct {
	ctx      context.Context
	p        *residual
	need     []int // remaining units per slice
	capacity []int // Σ bound of unassigned vars per slice
	free     []int // unassigned vars per slice
	assigned []bool
	dec      []int
	nodes    int
	maxNodes int
}

// solveBranchAndBound assigns a decrement to every var so that each slice
// loses exactly its error. maxNodes 0 means unlimited.
func (p *residual) solveBranchAndBound(ctx context.Context, maxNodes int) ([]int, error) {
	s := &bnb{
		ctx:      ctx,
		p:        p,
		need:     append([]int(nil), p.need...),
		capacity: make([]int, len(p.need)),
		free:     make([]int, len(p.need)),
		assigned: make([]bool, len(p.vars)),
		dec:      make([]int, len(p.vars)),
		maxNodes: maxNodes,
	}
	for id, vs := range p.sliceVars {
		s.free[id] = len(vs)
		for _, i := range vs {
			s.capacity[id] += p.vars[i].bound
		}
	}

	ok, err := s.search()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no assignment after %d nodes", ErrInfeasible, s.nodes)
	}

	return s.dec, nil
}

func (s *bnb) search() (bool, error) {
	s.nodes++
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		return false, fmt.Errorf("%d nodes: %w", s.maxNodes, ErrSolverLimit)
	}
	if s.nodes%ctxCheckEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			return false, err
		}
	}

	// most constrained open slice; any slice that can no longer reach its
	// need prunes the branch
	best := -1
	for id, need := range s.need {
		if need == 0 {
			continue
		}
		if need > s.capacity[id] {
			return false, nil
		}
		if best < 0 || s.free[id] < s.free[best] {
			best = id
		}
	}
	if best < 0 {
		return true, nil
	}

	v := -1
	for _, i := range s.p.sliceVars[best] {
		if !s.assigned[i] {
			v = i
			break
		}
	}
	if v < 0 {
		return false, nil
	}

	hi := s.p.vars[v].bound
	for _, id := range s.p.vars[v].slices {
		hi = min(hi, s.need[id])
	}
	for val := hi; val >= 0; val-- {
		s.set(v, val)
		ok, err := s.search()
		if ok || err != nil {
			return ok, err
		}
		s.unset(v, val)
	}

	return false, nil
}

func (s *bnb) set(v, val int) {
	s.assigned[v] = true
	s.dec[v] = val
	b := s.p.vars[v].bound
	for _, id := range s.p.vars[v].slices {
		s.need[id] -= val
		s.capacity[id] -= b
		s.free[id]--
	}
}

func (s *bnb) unset(v, val int) {
	s.assigned[v] = false
	s.dec[v] = 0
	b := s.p.vars[v].bound
	for _, id := range s.p.vars[v].slices {
		s.need[id] += val
		s.capacity[id] += b
		s.free[id]++
	}
}

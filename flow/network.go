package flow

import (
	"context"
	"fmt"
)

// Network is a directed flow network over vertices 0..n-1 with integer
// capacities. Every AddEdge stores a forward arc and its reverse residual
// arc side by side (ids e and e^1), so residual updates are O(1) and no
// maps or string keys are involved.
//
// A Network is mutated by MaxFlow; call Reset to run again from zero flow.
type Network struct {
	n    int
	adj  [][]int // vertex → arc ids
	to   []int
	res  []int64 // residual capacity per arc
	base []int64 // original capacity per arc (0 for reverse arcs)
}

// NewNetwork creates an empty network with n vertices.
// Errors: ErrBadNetworkSize when n < 2.
func NewNetwork(n int) (*Network, error) {
	if n < 2 {
		return nil, ErrBadNetworkSize
	}

	return &Network{n: n, adj: make([][]int, n)}, nil
}

// Len reports the number of vertices.
func (nw *Network) Len() int { return nw.n }

// AddEdge adds u→v with the given capacity and returns its edge id.
// Parallel edges are allowed and behave as their sum.
//
// Errors: ErrBadVertex, EdgeError (negative capacity).
// Complexity: O(1) amortized.
func (nw *Network) AddEdge(u, v int, capacity int64) (int, error) {
	if err := nw.checkVertex(u); err != nil {
		return -1, err
	}
	if err := nw.checkVertex(v); err != nil {
		return -1, err
	}
	if capacity < 0 {
		return -1, EdgeError{From: u, To: v, Cap: capacity}
	}

	id := len(nw.to)
	nw.to = append(nw.to, v, u)
	nw.res = append(nw.res, capacity, 0)
	nw.base = append(nw.base, capacity, 0)
	nw.adj[u] = append(nw.adj[u], id)
	nw.adj[v] = append(nw.adj[v], id^1)

	return id, nil
}

// Flow returns the flow currently carried by forward edge id.
// Errors: ErrBadEdge.
func (nw *Network) Flow(id int) (int64, error) {
	if id < 0 || id >= len(nw.to) || id&1 == 1 {
		return 0, fmt.Errorf("edge %d: %w", id, ErrBadEdge)
	}

	return nw.base[id] - nw.res[id], nil
}

// Reset restores every residual capacity to its original value.
func (nw *Network) Reset() {
	copy(nw.res, nw.base)
}

// MaxFlow pushes the maximum flow from s to t using opts.Algorithm and
// returns its value. Flows already present (from an earlier call without
// Reset) are kept and only the additional flow is returned.
//
// Errors: ErrBadVertex, ErrSameVertex, ctx.Err() on cancellation.
func (nw *Network) MaxFlow(ctx context.Context, s, t int, opts FlowOptions) (int64, error) {
	if err := nw.checkVertex(s); err != nil {
		return 0, err
	}
	if err := nw.checkVertex(t); err != nil {
		return 0, err
	}
	if s == t {
		return 0, ErrSameVertex
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opts.normalize()

	switch opts.Algorithm {
	case EdmondsKarp:
		return nw.edmondsKarp(ctx, s, t, opts)
	case FordFulkerson:
		return nw.fordFulkerson(ctx, s, t, opts)
	default:
		return nw.dinic(ctx, s, t, opts)
	}
}

func (nw *Network) checkVertex(v int) error {
	if v < 0 || v >= nw.n {
		return fmt.Errorf("vertex %d of %d: %w", v, nw.n, ErrBadVertex)
	}

	return nil
}

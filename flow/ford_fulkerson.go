package flow

import (
	"context"
	"math"
)

// fordFulkerson computes the maximum flow by augmenting along any DFS path
// in the residual network. Capacities are integral, so it terminates.
//
// Complexity: O(E · F), F = value of the maximum flow.
// Memory:     O(V + E)
func (nw *Network) fordFulkerson(ctx context.Context, s, t int, opts FlowOptions) (int64, error) {
	var (
		total   int64
		pushed  int64
		paths   int
		visited = make([]bool, nw.n)
	)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		for i := range visited {
			visited[i] = false
		}
		pushed = nw.dfsAugment(s, t, math.MaxInt64, visited)
		if pushed == 0 {
			break
		}
		total += pushed
		paths++
	}
	opts.Logger.Debug("ford-fulkerson done", "paths", paths, "flow", total)

	return total, nil
}

// dfsAugment finds one residual path from u to t and pushes its bottleneck.
func (nw *Network) dfsAugment(u, t int, available int64, visited []bool) int64 {
	if u == t {
		return available
	}
	visited[u] = true
	for _, e := range nw.adj[u] {
		v := nw.to[e]
		if nw.res[e] <= 0 || visited[v] {
			continue
		}
		if pushed := nw.dfsAugment(v, t, min(available, nw.res[e]), visited); pushed > 0 {
			nw.res[e] -= pushed
			nw.res[e^1] += pushed

			return pushed
		}
	}

	return 0
}

package flow

import (
	"context"
	"math"
)

// edmondsKarp computes the maximum flow by repeatedly augmenting along a
// BFS shortest path in the residual network.
//
// Complexity: O(V · E²)
// Memory:     O(V + E)
func (nw *Network) edmondsKarp(ctx context.Context, s, t int, opts FlowOptions) (int64, error) {
	var (
		total  int64
		paths  int
		parent = make([]int, nw.n) // arc id used to reach each vertex
		queue  = make([]int, 0, nw.n)
	)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		bottle := nw.bfsAugmentingPath(s, t, parent, queue)
		if bottle == 0 {
			break
		}
		for v := t; v != s; v = nw.to[parent[v]^1] {
			e := parent[v]
			nw.res[e] -= bottle
			nw.res[e^1] += bottle
		}
		total += bottle
		paths++
	}
	opts.Logger.Debug("edmonds-karp done", "paths", paths, "flow", total)

	return total, nil
}

// bfsAugmentingPath fills parent with the arcs of a shortest s→t residual
// path and returns its bottleneck, or 0 when t is unreachable.
func (nw *Network) bfsAugmentingPath(s, t int, parent, queue []int) int64 {
	for i := range parent {
		parent[i] = -1
	}
	queue = append(queue[:0], s)
	visited := make([]bool, nw.n)
	visited[s] = true
	for i := 0; i < len(queue) && !visited[t]; i++ {
		u := queue[i]
		for _, e := range nw.adj[u] {
			v := nw.to[e]
			if nw.res[e] > 0 && !visited[v] {
				visited[v] = true
				parent[v] = e
				queue = append(queue, v)
			}
		}
	}
	if !visited[t] {
		return 0
	}

	bottle := int64(math.MaxInt64)
	for v := t; v != s; v = nw.to[parent[v]^1] {
		bottle = min(bottle, nw.res[parent[v]])
	}

	return bottle
}

package flow

import (
	"context"
	"math"
)

// dinic computes the maximum flow using Dinic's algorithm (level graph +
// blocking flows).
//
// Steps:
//  1. Repeat until the sink is unreachable:
//     a. Check for cancellation (O(1)).
//     b. BFS over arcs with residual capacity to assign levels (O(V + E)).
//     c. If sink unreachable, break.
//     d. DFS-based blocking flow along strictly increasing levels, with a
//     per-vertex arc cursor so each arc is retired at most once per phase,
//     optionally rebuilding the level graph every LevelRebuildInterval
//     augmentations.
//
// Complexity:
//
//	Time:   O(V² · E) in general; O(E · √V) on unit-capacity networks,
//	        which covers the 0/1 rounding networks built by ndround.
//	Memory: O(V + E).
func (nw *Network) dinic(ctx context.Context, s, t int, opts FlowOptions) (int64, error) {
	var (
		total   int64
		pushed  int64
		phase   int
		augment int
		level   = make([]int, nw.n)
		iter    = make([]int, nw.n)
		queue   = make([]int, 0, nw.n)
	)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		if !nw.buildLevels(s, t, level, queue) {
			break
		}
		phase++
		for i := range iter {
			iter[i] = 0
		}

		for {
			if err := ctx.Err(); err != nil {
				return total, err
			}
			pushed = nw.dinicPush(s, t, math.MaxInt64, level, iter)
			if pushed == 0 {
				break
			}
			total += pushed
			augment++
			if opts.LevelRebuildInterval > 0 && augment%opts.LevelRebuildInterval == 0 {
				break
			}
		}
		opts.Logger.Debug("dinic phase", "phase", phase, "flow", total)
	}

	return total, nil
}

// buildLevels assigns BFS distances from s over residual arcs and reports
// whether t was reached.
func (nw *Network) buildLevels(s, t int, level, queue []int) bool {
	for i := range level {
		level[i] = -1
	}
	queue = append(queue[:0], s)
	level[s] = 0
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range nw.adj[u] {
			v := nw.to[e]
			if nw.res[e] > 0 && level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return level[t] >= 0
}

// dinicPush sends up to available units from u to t along the level graph
// and returns the amount actually sent.
func (nw *Network) dinicPush(u, t int, available int64, level, iter []int) int64 {
	if u == t {
		return available
	}
	for ; iter[u] < len(nw.adj[u]); iter[u]++ {
		e := nw.adj[u][iter[u]]
		v := nw.to[e]
		if nw.res[e] <= 0 || level[v] != level[u]+1 {
			continue
		}
		send := min(available, nw.res[e])
		if pushed := nw.dinicPush(v, t, send, level, iter); pushed > 0 {
			nw.res[e] -= pushed
			nw.res[e^1] += pushed

			return pushed
		}
	}

	return 0
}

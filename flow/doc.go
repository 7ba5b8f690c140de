// Package flow implements maximum-flow algorithms on dense, index-addressed
// networks with integer capacities. It is the exact engine behind the
// two-axis residual problem of ndround: rows and columns become vertices,
// per-cell adjustment bounds become arc capacities, and a flow saturating
// every source arc is an exact rounding.
//
// The algorithms offered are:
//
//   - Dinic (default)
//     Method: level graph construction + blocking flow via DFS.
//     Time:   O(E · √V) on unit-capacity networks, O(V² · E) in general.
//
//   - Edmonds–Karp
//     Method: breadth-first search for shortest augmenting paths.
//     Time:   O(V · E²) in the worst case.
//
//   - Ford–Fulkerson
//     Method: depth-first search to find any augmenting path.
//     Time:   O(E · F), where F is the total flow pushed.
//
// All three share one Network and produce the same flow value; they differ
// only in how they find augmenting paths. FlowOptions.Algorithm selects one.
//
// # API
//
//	nw, _ := flow.NewNetwork(4)
//	e, _ := nw.AddEdge(0, 1, 3)
//	...
//	value, err := nw.MaxFlow(ctx, 0, 3, flow.DefaultOptions())
//	f, _ := nw.Flow(e) // flow carried by edge e
//
// Edge ids returned by AddEdge are stable; Flow(id) reads the flow of any
// forward edge after MaxFlow. Reset clears all flows.
//
// # Errors
//
//   - ErrBadNetworkSize: NewNetwork with fewer than two vertices.
//   - ErrBadVertex: a vertex index outside [0, n).
//   - ErrBadEdge: Flow with an id not returned by AddEdge.
//   - ErrSameVertex: source == sink.
//   - EdgeError: negative capacity.
//   - ctx.Err(): cancellation between augmentations.
package flow

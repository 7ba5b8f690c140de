package flow

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrBadVertex is returned when a vertex index is outside [0, n).
var ErrBadVertex = fmt.Errorf("flow: %w", errBadVertex)
var errBadVertex = errors.New("vertex index out of range")

// ErrBadEdge is returned when an edge id does not name a forward edge.
var ErrBadEdge = fmt.Errorf("flow: %w", errBadEdge)
var errBadEdge = errors.New("unknown edge id")

// ErrSameVertex is returned when source and sink coincide.
var ErrSameVertex = fmt.Errorf("flow: %w", errSameVertex)
var errSameVertex = errors.New("source equals sink")

// ErrBadNetworkSize is returned by NewNetwork for n < 2.
var ErrBadNetworkSize = fmt.Errorf("flow: %w", errBadNetworkSize)
var errBadNetworkSize = errors.New("network needs at least two vertices")

// EdgeError is returned when an edge has a negative capacity.
type EdgeError struct {
	From, To int
	Cap      int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on edge %d→%d: %d", e.From, e.To, e.Cap)
}

// Algorithm selects the augmenting strategy of MaxFlow.
type Algorithm int

const (
	// Dinic uses level graphs and blocking flows. Default.
	Dinic Algorithm = iota

	// EdmondsKarp augments along BFS shortest paths.
	EdmondsKarp

	// FordFulkerson augments along any DFS path.
	FordFulkerson
)

func (a Algorithm) String() string {
	switch a {
	case Dinic:
		return "dinic"
	case EdmondsKarp:
		return "edmonds-karp"
	case FordFulkerson:
		return "ford-fulkerson"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ErrUnknownAlgorithm is returned by ParseAlgorithm for an unrecognized name.
var ErrUnknownAlgorithm = errors.New("flow: unknown algorithm")

// ParseAlgorithm maps a String() name back to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range []Algorithm{Dinic, EdmondsKarp, FordFulkerson} {
		if a.String() == name {
			return a, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
}

// FlowOptions configures all max-flow algorithms.
//   - Algorithm: augmenting strategy (default Dinic).
//   - LevelRebuildInterval: for Dinic, rebuild level graph every N augmentations
//     (0 = only when the blocking flow is exhausted).
//   - Logger: receives one Debug record per phase; nil discards.
type FlowOptions struct {
	Algorithm            Algorithm
	LevelRebuildInterval int
	Logger               *slog.Logger
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() FlowOptions {
	return FlowOptions{Algorithm: Dinic}
}

func (o *FlowOptions) normalize() {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.LevelRebuildInterval < 0 {
		o.LevelRebuildInterval = 0
	}
}

// Package sample - randomized and deterministic selection primitives shared
// by the integerizers.
//
// Goals:
//   - Determinism: same generator state ⇒ identical draws across platforms.
//   - Encapsulation: callers own the *rand.Rand; nothing here seeds from time
//     or from package-level state.
//   - Performance: O(n log k) selection; no per-draw rescans of the weights.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across
//     goroutines when reproducibility matters.
package sample

import (
	"container/heap"
	"errors"
	"math"
	"math/rand"
)

var (
	// ErrNilRand is returned when a generator is required but nil was passed.
	ErrNilRand = errors.New("sample: nil random generator")

	// ErrBadWeight is returned for negative, NaN or infinite weights.
	ErrBadWeight = errors.New("sample: weight must be finite and >= 0")

	// ErrInsufficientSupport is returned when k exceeds the number of
	// strictly positive weights.
	ErrInsufficientSupport = errors.New("sample: fewer positive weights than requested draws")
)

// Positive counts strictly positive weights.
// Complexity: O(n).
func Positive(weights []float64) int {
	var n int
	for _, w := range weights {
		if w > 0 {
			n++
		}
	}

	return n
}

// keyed is one candidate in the selection heap.
type keyed struct {
	idx int
	key float64
}

// minHeap keeps the k best keys seen so far; the root is the worst of them.
type minHeap []keyed

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].key == h[j].key {
		return h[i].idx > h[j].idx // higher index is "worse" on ties
	}

	return h[i].key < h[j].key
}
func (h minHeap) Swap(i, j int)  { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)    { *h = append(*h, x.(keyed)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

// WithoutReplacement draws k distinct indices where each successive draw
// picks index i with probability weights[i] / Σ(remaining weights).
//
// Implementation (Efraimidis–Spirakis):
//   - every positive weight gets key = ln(u)/w with u uniform on (0,1];
//   - the k largest keys are the sample; they are returned in draw order
//     (largest key first).
//
// Determinism: exactly one rng.Float64() per positive weight, in index order.
//
// Errors: ErrNilRand, ErrBadWeight, ErrInsufficientSupport.
// Complexity: O(n log k) time, O(k) extra space.
func WithoutReplacement(rng *rand.Rand, weights []float64, k int) ([]int, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if k <= 0 {
		return []int{}, nil
	}

	var (
		h   = make(minHeap, 0, k)
		pos int
		i   int
		w   float64
		u   float64
		key float64
	)
	for i, w = range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, ErrBadWeight
		}
		if w == 0 {
			continue
		}
		pos++
		u = 1 - rng.Float64() // (0,1]
		key = math.Log(u) / w
		if len(h) < k {
			heap.Push(&h, keyed{idx: i, key: key})
			continue
		}
		if key > h[0].key {
			h[0] = keyed{idx: i, key: key}
			heap.Fix(&h, 0)
		}
	}
	if pos < k {
		return nil, ErrInsufficientSupport
	}

	out := make([]int, len(h))
	for i = len(h) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(keyed).idx
	}

	return out, nil
}

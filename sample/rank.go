package sample

import "sort"

// Largest returns up to k indices with the largest scores among those
// accepted by eligible (nil accepts all). Ties go to the lower index, so the
// result is fully deterministic.
//
// Complexity: O(n log n).
func Largest(scores []float64, k int, eligible func(i int) bool) []int {
	return rank(scores, k, eligible, true)
}

// Smallest is Largest with ascending order.
//
// Complexity: O(n log n).
func Smallest(scores []float64, k int, eligible func(i int) bool) []int {
	return rank(scores, k, eligible, false)
}

func rank(scores []float64, k int, eligible func(i int) bool, desc bool) []int {
	idx := make([]int, 0, len(scores))
	for i := range scores {
		if eligible == nil || eligible(i) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		sa, sb := scores[idx[a]], scores[idx[b]]
		if desc {
			return sa > sb
		}

		return sa < sb
	})
	if k < len(idx) {
		idx = idx[:k]
	}

	return idx
}

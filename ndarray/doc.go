// Package ndarray provides the N-dimensional dense array consumed by the
// proportional balancer (ipf) and the N-dimensional rounders (ndround).
//
// Storage is row-major: the last axis varies fastest, exactly like
// matrix.Dense for two axes. Marginals(), ScaleAxis() and Walk() are the
// primitives the balancing and rounding loops are built from.
//
//	a, _ := ndarray.FromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
//	a.Marginals() // [[6 15] [5 7 9]]
package ndarray

package ndround_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/integerize/ndarray"
	"github.com/katalvlaran/integerize/ndround"
)

func array(t testing.TB, shape []int, data []float64) *ndarray.Array {
	t.Helper()
	a, err := ndarray.FromSlice(shape, data)
	require.NoError(t, err)

	return a
}

// perturbed returns a fractional array whose marginals are exactly those of
// a random positive integer table. Mass is moved around 2×2 cycles on the
// first two axes, keeping every cell within one unit of the table, so the
// table itself is reachable from the ceiling with decrements of at most one.
func perturbed(t testing.TB, rng *rand.Rand, shape ...int) (*ndarray.Array, [][]int) {
	t.Helper()
	table, err := ndarray.New(shape...)
	require.NoError(t, err)
	base := table.Raw()
	for i := range base {
		base[i] = float64(1 + rng.Intn(9))
	}
	marginals := make([][]int, len(shape))
	for axis, m := range table.Marginals() {
		marginals[axis] = make([]int, len(m))
		for i, v := range m {
			marginals[axis][i] = int(math.Round(v))
		}
	}

	a := table.Clone()
	data := a.Raw()
	p := make([]int, len(shape))
	for n := 0; n < 4*len(data); n++ {
		for k := range p {
			p[k] = rng.Intn(shape[k])
		}
		i2, j2 := rng.Intn(shape[0]), rng.Intn(shape[1])
		if i2 == p[0] || j2 == p[1] {
			continue
		}
		delta := 0.05 + 0.4*rng.Float64()

		offs := make([]int, 4)
		signs := []float64{delta, delta, -delta, -delta}
		for c, ij := range [][2]int{{p[0], p[1]}, {i2, j2}, {p[0], j2}, {i2, p[1]}} {
			q := append([]int(nil), p...)
			q[0], q[1] = ij[0], ij[1]
			offs[c], err = a.Offset(q)
			require.NoError(t, err)
		}
		ok := true
		for c, off := range offs {
			if math.Abs(data[off]+signs[c]-base[off]) >= 0.95 {
				ok = false
			}
		}
		if !ok {
			continue
		}
		for c, off := range offs {
			data[off] += signs[c]
		}
	}

	return a, marginals
}

// requireRounding checks that out is a valid rounding of a for marginals
// and stays within [ceil(a)-bound, ceil(a)].
func requireRounding(t *testing.T, a, out *ndarray.Array, marginals [][]int, bound int) {
	t.Helper()
	require.NoError(t, ndround.CheckOutput(out, marginals))
	src, got := a.Raw(), out.Raw()
	for i, v := range got {
		c := math.Ceil(src[i])
		require.LessOrEqual(t, v, c, "cell %d", i)
		require.GreaterOrEqual(t, v, c-float64(bound), "cell %d", i)
		require.GreaterOrEqual(t, v, 0.0, "cell %d", i)
	}
}

// trap returns the 2×2 problem whose only rounding is [[0,1],[0,0]]. A
// stochastic first step that picks the off-diagonal cell dead-ends.
func trap(t *testing.T) (*ndarray.Array, [][]int) {
	t.Helper()

	return array(t, []int{2, 2}, []float64{0.6, 0.7, 0, 0.8}), [][]int{{1, 0}, {0, 1}}
}

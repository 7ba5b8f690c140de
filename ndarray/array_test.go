package ndarray_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/integerize/matrix"
	"github.com/katalvlaran/integerize/ndarray"
)

func TestNewBadShape(t *testing.T) {
	_, err := ndarray.New()
	require.ErrorIs(t, err, ndarray.ErrBadShape)

	_, err = ndarray.New(2, 0, 3)
	require.ErrorIs(t, err, ndarray.ErrBadShape)
}

func TestFromSliceLengthMismatch(t *testing.T) {
	_, err := ndarray.FromSlice([]int{2, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, ndarray.ErrDimensionMismatch)
}

func TestOffsetAndUnravelRoundTrip(t *testing.T) {
	a, err := ndarray.New(2, 3, 4)
	require.NoError(t, err)

	coords := make([]int, 3)
	for off := 0; off < a.Size(); off++ {
		a.Unravel(off, coords)
		got, err := a.Offset(coords)
		require.NoError(t, err)
		require.Equal(t, off, got)
	}

	_, err = a.Offset([]int{0, 3, 0})
	require.ErrorIs(t, err, ndarray.ErrOutOfRange)
	_, err = a.Offset([]int{0, 0})
	require.ErrorIs(t, err, ndarray.ErrDimensionMismatch)
}

func TestAtSet(t *testing.T) {
	a, err := ndarray.New(2, 2)
	require.NoError(t, err)

	require.NoError(t, a.Set(4.5, 1, 0))
	v, err := a.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)
	require.Equal(t, 4.5, a.Raw()[2])

	require.ErrorIs(t, a.Set(math.NaN(), 0, 0), ndarray.ErrNaNInf)
}

func TestWalkVisitsRowMajor(t *testing.T) {
	a, err := ndarray.New(2, 3)
	require.NoError(t, err)

	var seen [][2]int
	a.Walk(func(off int, coords []int) {
		seen = append(seen, [2]int{coords[0], coords[1]})
		require.Equal(t, coords[0]*3+coords[1], off)
	})
	require.Len(t, seen, 6)
	require.Equal(t, [2]int{1, 2}, seen[5])
}

func TestMarginals(t *testing.T) {
	a, err := ndarray.FromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	m := a.Marginals()
	require.Equal(t, []float64{6, 15}, m[0])
	require.Equal(t, []float64{5, 7, 9}, m[1])

	col, err := a.Marginal(1)
	require.NoError(t, err)
	require.Equal(t, m[1], col)

	_, err = a.Marginal(2)
	require.ErrorIs(t, err, ndarray.ErrAxis)
}

func TestScaleAxisAndCeil(t *testing.T) {
	a, err := ndarray.FromSlice([]int{2, 2}, []float64{1, 1, 1, 1})
	require.NoError(t, err)

	require.NoError(t, a.ScaleAxis(0, []float64{0.5, 2.25}))
	require.Equal(t, []float64{0.5, 0.5, 2.25, 2.25}, a.Raw())
	require.False(t, a.IsIntegral())

	a.Ceil()
	require.Equal(t, []float64{1, 1, 3, 3}, a.Raw())
	require.True(t, a.IsIntegral())
	require.Equal(t, []int{1, 1, 3, 3}, a.Ints())
	require.Equal(t, 8.0, a.Sum())

	require.ErrorIs(t, a.ScaleAxis(1, []float64{1}), ndarray.ErrDimensionMismatch)
}

func TestCloneAndEqual(t *testing.T) {
	a, err := ndarray.FromSlice([]int{3}, []float64{1, 2, 3})
	require.NoError(t, err)
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Raw()[0] = 9
	require.False(t, a.Equal(b))
	require.Equal(t, 1.0, a.Raw()[0])
}

func TestValidateNonNegative(t *testing.T) {
	a, err := ndarray.FromSlice([]int{2, 2}, []float64{0, 1, -1, 2})
	require.NoError(t, err)

	err = ndarray.ValidateNonNegative(a)
	require.ErrorIs(t, err, ndarray.ErrNegative)
	require.Contains(t, err.Error(), "[1 0]")

	require.ErrorIs(t, ndarray.ValidateNonNegative(nil), ndarray.ErrNilArray)
}

func TestFromMatrix(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	a, err := ndarray.FromMatrix(m)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, a.Shape())
	v, err := a.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
}

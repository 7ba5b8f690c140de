package ndround_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/integerize/ndarray"
	"github.com/katalvlaran/integerize/ndround"
)

func TestRoundingError(t *testing.T) {
	a := array(t, []int{2, 2}, []float64{1, 2, 3, 4})

	errs, err := ndround.RoundingError(a, [][]int{{2, 6}, {4, 4}})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 1}, {0, 2}}, errs)

	_, err = ndround.RoundingError(array(t, []int{2}, []float64{0.5, 1}), [][]int{{1, 0}})
	require.ErrorIs(t, err, ndround.ErrInvalidOutput)
}

func TestCheckOutput(t *testing.T) {
	out := array(t, []int{2, 2}, []float64{0, 1, 0, 0})
	require.NoError(t, ndround.CheckOutput(out, [][]int{{1, 0}, {0, 1}}))

	err := ndround.CheckOutput(out, [][]int{{0, 1}, {0, 1}})
	require.ErrorIs(t, err, ndround.ErrInvalidOutput)
	var se *ndarray.SliceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Axis)
	assert.Equal(t, 0, se.Index)

	frac := array(t, []int{2}, []float64{0.5, 0.5})
	require.ErrorIs(t, ndround.CheckOutput(frac, [][]int{{0, 1}}), ndround.ErrInvalidOutput)

	err = ndround.CheckOutput(out, [][]int{{1, 0, 0}, {0, 1}})
	require.ErrorIs(t, err, ndround.ErrDimensionMismatch)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, -1, se.Index)
}

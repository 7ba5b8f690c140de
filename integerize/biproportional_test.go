package integerize_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/integerize/integerize"
	"github.com/katalvlaran/integerize/matrix"
	"github.com/katalvlaran/integerize/ndarray"
)

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// debugLogger returns a logger writing text records to buf at Debug level.
func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type BiproportionalSuite struct {
	suite.Suite
}

func TestBiproportionalSuite(t *testing.T) {
	suite.Run(t, new(BiproportionalSuite))
}

func (s *BiproportionalSuite) TestTwoByTwoReallocation() {
	m := dense(s.T(), [][]float64{{1.4, 1.4}, {1.2, 1.0}})

	got, err := integerize.Biproportional(m, []int{3, 2}, []int{3, 2})
	s.Require().NoError(err)
	s.Equal([][]int{{1, 2}, {2, 0}}, got)
}

func (s *BiproportionalSuite) TestAlreadyBalancedIsUntouched() {
	m := dense(s.T(), [][]float64{{2, 1}, {0, 3}})

	got, err := integerize.Biproportional(m, []int{3, 3}, []int{2, 4})
	s.Require().NoError(err)
	s.Equal([][]int{{2, 1}, {0, 3}}, got)
}

func (s *BiproportionalSuite) TestLessThanMode() {
	m := dense(s.T(), [][]float64{{2, 2}, {0.5, 0.5}})

	got, err := integerize.Biproportional(m, []int{1, 5}, []int{2, 2},
		integerize.WithMode(integerize.ModeLessThan))
	s.Require().NoError(err)
	s.Equal([][]int{{0, 1}, {2, 1}}, got)
}

func (s *BiproportionalSuite) TestInconsistentControlsFailBeforeRounding() {
	m := dense(s.T(), [][]float64{{1, 1}, {1, 1}})

	_, err := integerize.Biproportional(m, []int{3, 2}, []int{3, 3})
	s.Require().ErrorIs(err, integerize.ErrInconsistentControls)
	s.Require().ErrorIs(err, integerize.ErrInvalidInput)

	_, err = integerize.Biproportional(m, []int{1, 1}, []int{2, 2},
		integerize.WithMode(integerize.ModeLessThan))
	s.Require().ErrorIs(err, integerize.ErrInconsistentControls)
}

func (s *BiproportionalSuite) TestValidation() {
	m := dense(s.T(), [][]float64{{1, 1}, {1, 1}})

	_, err := integerize.Biproportional(m, []int{2}, []int{1, 1})
	s.Require().ErrorIs(err, integerize.ErrDimensionMismatch)

	_, err = integerize.Biproportional(m, []int{2, 0}, []int{1, 1, 0})
	s.Require().ErrorIs(err, integerize.ErrDimensionMismatch)

	_, err = integerize.Biproportional(m, []int{3, -1}, []int{1, 1})
	s.Require().ErrorIs(err, integerize.ErrNegativeControl)
	var se *ndarray.SliceError
	s.Require().True(errors.As(err, &se))
	s.Equal(integerize.AxisRows, se.Axis)
	s.Equal(1, se.Index)

	neg := dense(s.T(), [][]float64{{1, -1}, {1, 1}})
	_, err = integerize.Biproportional(neg, []int{1, 1}, []int{1, 1})
	s.Require().ErrorIs(err, integerize.ErrNegativeValue)
	s.Require().ErrorIs(err, matrix.ErrNegative)

	_, err = integerize.Biproportional(nil, nil, nil)
	s.Require().ErrorIs(err, integerize.ErrInvalidInput)

	_, err = integerize.Biproportional(m, []int{1, 1}, []int{1, 1}, integerize.WithMode(integerize.Mode(9)))
	s.Require().ErrorIs(err, integerize.ErrBadOption)
}

func (s *BiproportionalSuite) TestZeroColumnBeyondSupportIsInfeasible() {
	m := dense(s.T(), [][]float64{{0, 1}, {0, 1}})

	_, err := integerize.Biproportional(m, []int{3, 1}, []int{3, 1})
	s.Require().ErrorIs(err, integerize.ErrInfeasible)
	var se *ndarray.SliceError
	s.Require().True(errors.As(err, &se))
	s.Equal(integerize.AxisCols, se.Axis)
	s.Equal(0, se.Index)
}

func (s *BiproportionalSuite) TestNeighborhoodTierAdmitsAdjacentZero() {
	// After column rounding row 1 must absorb a unit in column 0 where it
	// is zero; column 1 of the same row is non-zero.
	var buf bytes.Buffer
	m := dense(s.T(), [][]float64{{1, 1}, {0, 1}})

	got, err := integerize.Biproportional(m, []int{1, 2}, []int{1, 2},
		integerize.WithLogger(debugLogger(&buf)))
	s.Require().NoError(err)
	s.Equal([][]int{{0, 1}, {1, 1}}, got)
	s.Contains(buf.String(), "tier=neighborhood")
	s.NotContains(buf.String(), "tier=unrestricted")
}

func (s *BiproportionalSuite) TestZeroWindowSkipsNeighborhood() {
	var buf bytes.Buffer
	m := dense(s.T(), [][]float64{{1, 1}, {0, 1}})

	got, err := integerize.Biproportional(m, []int{1, 2}, []int{1, 2},
		integerize.WithNeighborhood(0), integerize.WithLogger(debugLogger(&buf)))
	s.Require().NoError(err)
	s.Equal([][]int{{0, 1}, {1, 1}}, got)
	s.Contains(buf.String(), "tier=unrestricted")
	s.NotContains(buf.String(), "tier=neighborhood")
}

func (s *BiproportionalSuite) TestUnrestrictedTier() {
	var buf bytes.Buffer
	m := dense(s.T(), [][]float64{{1, 1, 0, 0}, {0, 0, 0, 1}})

	got, err := integerize.Biproportional(m, []int{1, 2}, []int{1, 1, 0, 1},
		integerize.WithLogger(debugLogger(&buf)))
	s.Require().NoError(err)
	s.Equal([][]int{{0, 1, 0, 0}, {1, 0, 0, 1}}, got)
	s.Contains(buf.String(), "tier=unrestricted")
}

// TestRandomConsistentControls checks column sums and row sums on random
// problems whose controls come from the matrix itself.
func (s *BiproportionalSuite) TestRandomConsistentControls() {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 100; trial++ {
		r, c := 1+rng.Intn(6), 1+rng.Intn(6)
		rows := make([][]float64, r)
		rowCtl := make([]int, r)
		colCtl := make([]int, c)
		for i := range rows {
			rows[i] = make([]float64, c)
			for j := range rows[i] {
				if rng.Float64() < 0.3 {
					continue
				}
				k := rng.Intn(5)
				rows[i][j] = float64(k) + rng.Float64()*0.5
				rowCtl[i] += k
				colCtl[j] += k
			}
		}
		m := dense(s.T(), rows)

		for _, mode := range []integerize.Mode{integerize.ModeExact, integerize.ModeLessThan} {
			got, err := integerize.Biproportional(m, rowCtl, colCtl, integerize.WithMode(mode))
			s.Require().NoError(err, "trial %d", trial)

			colSums := make([]int, c)
			for i, row := range got {
				rowSum := 0
				for j, v := range row {
					s.Require().GreaterOrEqual(v, 0)
					rowSum += v
					colSums[j] += v
				}
				if mode == integerize.ModeExact {
					s.Require().Equal(rowCtl[i], rowSum, "trial %d row %d", trial, i)
				} else {
					s.Require().LessOrEqual(rowSum, rowCtl[i], "trial %d row %d", trial, i)
				}
			}
			s.Require().Equal(colCtl, colSums, "trial %d", trial)
		}
	}
}

func TestBiproportional_DoesNotMutateInput(t *testing.T) {
	m := dense(t, [][]float64{{1.4, 1.4}, {1.2, 1.0}})
	before := m.String()

	_, err := integerize.Biproportional(m, []int{3, 2}, []int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, before, m.String())
}

func TestBiproportional_NilDense(t *testing.T) {
	var m *matrix.Dense

	_, err := integerize.Biproportional(m, []int{1}, []int{1})
	require.ErrorIs(t, err, integerize.ErrInvalidInput)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

package integerize_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/integerize/integerize"
)

func sumInts(xs []int) int {
	var s int
	for _, x := range xs {
		s += x
	}

	return s
}

func TestVector_DefaultPolicyPicksLargestGain(t *testing.T) {
	got, err := integerize.Vector([]float64{0.3, 0.3, 0.4}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1}, got)
}

func TestVector_ZeroInputFrontLoads(t *testing.T) {
	got, err := integerize.Vector([]float64{0, 0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0}, got)

	_, err = integerize.Vector([]float64{0, 0}, 3)
	require.ErrorIs(t, err, integerize.ErrInfeasible)
}

func TestVector_ZeroControl(t *testing.T) {
	got, err := integerize.Vector([]float64{1.5, 2.5}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, got)
}

func TestVector_Policies(t *testing.T) {
	values := []float64{2.5, 1.5, 1.0} // scaled by 0.8 → 2.0, 1.2, 0.8
	cases := []struct {
		policy integerize.Policy
		want   []int
	}{
		{integerize.PolicyLargest, []int{1, 2, 1}},
		{integerize.PolicySmallest, []int{2, 2, 0}},
		{integerize.PolicyLargestDifference, []int{2, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			got, err := integerize.Vector(values, 4, integerize.WithPolicy(tc.policy))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVector_IntegralInputIsFixedPoint(t *testing.T) {
	values := []float64{3, 0, 2, 5}
	for _, p := range []integerize.Policy{
		integerize.PolicyLargest,
		integerize.PolicySmallest,
		integerize.PolicyLargestDifference,
		integerize.PolicyWeightedRandom,
	} {
		got, err := integerize.Vector(values, 10,
			integerize.WithPolicy(p), integerize.WithRand(rand.New(rand.NewSource(1))))
		require.NoError(t, err, p.String())
		assert.Equal(t, []int{3, 0, 2, 5}, got, p.String())
	}
}

func TestVector_FloatingNoiseDoesNotAddUnit(t *testing.T) {
	got, err := integerize.Vector([]float64{0.1 + 0.2, 0.7}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sumInts(got))
}

func TestVector_WeightedRandomNeedsRand(t *testing.T) {
	_, err := integerize.Vector([]float64{0.5, 0.5}, 1, integerize.WithPolicy(integerize.PolicyWeightedRandom))
	require.ErrorIs(t, err, integerize.ErrNilRand)
	require.ErrorIs(t, err, integerize.ErrInvalidInput)
}

func TestVector_WeightedRandomIsSeedDeterministic(t *testing.T) {
	values := []float64{1.3, 2.7, 0.4, 3.3, 0.9, 1.4}
	run := func() []int {
		got, err := integerize.Vector(values, 9,
			integerize.WithPolicy(integerize.PolicyWeightedRandom),
			integerize.WithRand(rand.New(rand.NewSource(2024))))
		require.NoError(t, err)

		return got
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.Equal(t, 9, sumInts(a))
}

// TestVector_WithinOneUnit checks every policy hits the control exactly and
// stays within one unit of the rescaled values.
func TestVector_WithinOneUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	policies := []integerize.Policy{
		integerize.PolicyLargest,
		integerize.PolicySmallest,
		integerize.PolicyLargestDifference,
		integerize.PolicyWeightedRandom,
	}
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(12)
		values := make([]float64, n)
		var sum float64
		for i := range values {
			if rng.Float64() < 0.2 {
				continue
			}
			values[i] = rng.Float64() * 10
			sum += values[i]
		}
		control := rng.Intn(40)
		for _, p := range policies {
			got, err := integerize.Vector(values, control,
				integerize.WithPolicy(p), integerize.WithRand(rng))
			if sum == 0 && control > n {
				require.ErrorIs(t, err, integerize.ErrInfeasible)
				continue
			}
			require.NoError(t, err)
			require.Equal(t, control, sumInts(got))
			if sum == 0 {
				continue
			}
			for i, v := range got {
				require.GreaterOrEqual(t, v, 0)
				scaled := values[i] * float64(control) / sum
				dist := math.Abs(float64(v) - scaled)
				switch p {
				case integerize.PolicyLargest, integerize.PolicySmallest:
					// value-ranked policies may take a unit from an exact cell
					require.LessOrEqual(t, dist, 1.0+1e-9, "trial %d policy %v idx %d", trial, p, i)
				default:
					require.Less(t, dist, 1.0, "trial %d policy %v idx %d", trial, p, i)
				}
				if values[i] == 0 {
					require.Zero(t, v)
				}
			}
		}
	}
}

func TestVector_Validation(t *testing.T) {
	_, err := integerize.Vector([]float64{1, -1}, 1)
	require.ErrorIs(t, err, integerize.ErrNegativeValue)
	require.ErrorIs(t, err, integerize.ErrInvalidInput)

	_, err = integerize.Vector([]float64{1, math.NaN()}, 1)
	require.ErrorIs(t, err, integerize.ErrNaNInf)

	_, err = integerize.Vector([]float64{1, math.Inf(1)}, 1)
	require.ErrorIs(t, err, integerize.ErrNaNInf)

	_, err = integerize.Vector([]float64{1}, -1)
	require.ErrorIs(t, err, integerize.ErrNegativeControl)

	_, err = integerize.Vector([]float64{1}, 1, integerize.WithPolicy(integerize.Policy(42)))
	require.ErrorIs(t, err, integerize.ErrBadOption)
}

func TestVectorPreserveSum(t *testing.T) {
	got, err := integerize.VectorPreserveSum([]float64{0.5, 0.5, 1.0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, got)

	_, err = integerize.VectorPreserveSum([]float64{0.5, 0.7})
	require.ErrorIs(t, err, integerize.ErrNonIntegerControl)
}

func TestControlFromFloat(t *testing.T) {
	c, err := integerize.ControlFromFloat(3.0000000001)
	require.NoError(t, err)
	assert.Equal(t, 3, c)

	_, err = integerize.ControlFromFloat(2.5)
	require.ErrorIs(t, err, integerize.ErrNonIntegerControl)

	_, err = integerize.ControlFromFloat(-1)
	require.ErrorIs(t, err, integerize.ErrNegativeControl)

	_, err = integerize.ControlFromFloat(math.NaN())
	require.ErrorIs(t, err, integerize.ErrNaNInf)
}

func TestParsePolicyAndMode(t *testing.T) {
	p, err := integerize.ParsePolicy("weighted_random")
	require.NoError(t, err)
	assert.Equal(t, integerize.PolicyWeightedRandom, p)

	_, err = integerize.ParsePolicy("median")
	require.ErrorIs(t, err, integerize.ErrBadOption)

	m, err := integerize.ParseMode("less than")
	require.NoError(t, err)
	assert.Equal(t, integerize.ModeLessThan, m)
	assert.Equal(t, "less-than", m.String())

	_, err = integerize.ParseMode("greater")
	require.ErrorIs(t, err, integerize.ErrBadOption)
}

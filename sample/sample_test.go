package sample_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/integerize/sample"
)

func TestWithoutReplacement_NilRand(t *testing.T) {
	_, err := sample.WithoutReplacement(nil, []float64{1}, 1)
	require.ErrorIs(t, err, sample.ErrNilRand)
}

func TestWithoutReplacement_BadWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := sample.WithoutReplacement(rng, []float64{1, -1}, 1)
	require.ErrorIs(t, err, sample.ErrBadWeight)

	_, err = sample.WithoutReplacement(rng, []float64{1, math.NaN()}, 1)
	require.ErrorIs(t, err, sample.ErrBadWeight)
}

func TestWithoutReplacement_Insufficient(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := sample.WithoutReplacement(rng, []float64{0, 1, 0}, 2)
	require.ErrorIs(t, err, sample.ErrInsufficientSupport)
}

func TestWithoutReplacement_DistinctAndPositiveOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := []float64{0, 3, 0, 1, 2, 0, 5}

	got, err := sample.WithoutReplacement(rng, w, 4)
	require.NoError(t, err)
	require.Len(t, got, 4)

	seen := map[int]bool{}
	for _, i := range got {
		require.False(t, seen[i], "index %d drawn twice", i)
		seen[i] = true
		require.Greater(t, w[i], 0.0)
	}
}

func TestWithoutReplacement_AllPositiveDrawn(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	got, err := sample.WithoutReplacement(rng, []float64{0.2, 0.5, 0.3}, 3)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1, 2}, got)
}

func TestWithoutReplacement_SeedDeterminism(t *testing.T) {
	w := []float64{0.1, 0.9, 0.4, 0.4, 0.7, 0.05, 0.3}
	a, err := sample.WithoutReplacement(rand.New(rand.NewSource(42)), w, 3)
	require.NoError(t, err)
	b, err := sample.WithoutReplacement(rand.New(rand.NewSource(42)), w, 3)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

// TestWithoutReplacement_FirstDrawFrequency checks the first draw follows
// the weights (loose statistical bound, fixed seed).
func TestWithoutReplacement_FirstDrawFrequency(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	w := []float64{1, 3}
	const trials = 20000

	var hits int
	for i := 0; i < trials; i++ {
		got, err := sample.WithoutReplacement(rng, w, 1)
		require.NoError(t, err)
		if got[0] == 1 {
			hits++
		}
	}
	require.InDelta(t, 0.75, float64(hits)/trials, 0.02)
}

func TestLargestSmallest(t *testing.T) {
	scores := []float64{2, 5, 5, 0, 1}

	require.Equal(t, []int{1, 2}, sample.Largest(scores, 2, nil))
	require.Equal(t, []int{3, 4}, sample.Smallest(scores, 2, nil))

	nonZero := func(i int) bool { return scores[i] > 0 }
	require.Equal(t, []int{4, 0}, sample.Smallest(scores, 2, nonZero))
	require.Equal(t, []int{1, 2, 0, 4}, sample.Largest(scores, 10, nonZero))
}

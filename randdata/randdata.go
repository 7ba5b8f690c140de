// Package randdata generates synthetic rounding problems: non-negative
// N-dimensional data balanced to integer marginals with equal totals.
//
// Every generator draws only from the supplied *rand.Rand, so a seed fully
// determines the problem. Marginals assume an average cell value of
// MeanCell and the data is fitted to them with ipf.Balance at a tight
// threshold. A fit that stops short can leave a slice whose ceiled cells sum
// below its target; Problem.Reachable reports whether that happened.
package randdata

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/integerize/ipf"
	"github.com/katalvlaran/integerize/ndarray"
)

// Defaults.
const (
	// MeanCell is the average cell value the marginals are sized for.
	MeanCell = 10

	// DefaultLowThreshold and DefaultLowFraction parameterize LowSkewed.
	DefaultLowThreshold = 0.1
	DefaultLowFraction  = 0.8

	// DefaultSparseFraction is the share of cells Sparse zeroes.
	DefaultSparseFraction = 0.7

	// balanceThreshold is the ipf.Options.Threshold used for fitting.
	balanceThreshold = 1e-10
)

var (
	// ErrNilRand indicates a missing random generator.
	ErrNilRand = errors.New("randdata: nil random generator")

	// ErrBadParameter indicates a threshold or fraction outside [0,1].
	ErrBadParameter = errors.New("randdata: parameter out of range")
)

// Problem is one generated rounding problem.
type Problem struct {
	Data      *ndarray.Array
	Marginals [][]int

	// Converged reports whether ipf.Balance met its threshold.
	Converged bool

	// Reachable reports whether every slice of the ceiled data sums to at
	// least its target, so a decrement-only rounding can exist. Uniform and
	// LowSkewed data is dense and in practice always reachable; Sparse data
	// with many zeros may not be.
	Reachable bool
}

// Uniform draws every cell from U(0.25, 1) and every marginal entry from
// U(0.5, 1), scaled to MeanCell·size and rounded with the first entry
// absorbing the rounding.
//
// Errors: ErrNilRand, ndarray.ErrBadShape.
func Uniform(rng *rand.Rand, shape []int) (Problem, error) {
	a, err := uniformData(rng, shape, 0.25, 1)
	if err != nil {
		return Problem{}, err
	}

	return balance(a, drawMarginals(rng, a))
}

// LowSkewed draws every cell from U(0, 1), then replaces each cell above
// lowThreshold, with probability frac, by a draw from U(0, lowThreshold).
// Marginals are drawn as in Uniform.
//
// Errors: ErrNilRand, ndarray.ErrBadShape, ErrBadParameter.
func LowSkewed(rng *rand.Rand, shape []int, lowThreshold, frac float64) (Problem, error) {
	if err := checkUnit("lowThreshold", lowThreshold); err != nil {
		return Problem{}, err
	}
	if err := checkUnit("frac", frac); err != nil {
		return Problem{}, err
	}
	a, err := uniformData(rng, shape, 0, 1)
	if err != nil {
		return Problem{}, err
	}
	data := a.Raw()
	for i, v := range data {
		if v > lowThreshold && rng.Float64() < frac {
			data[i] = lowThreshold * rng.Float64()
		}
	}

	return balance(a, drawMarginals(rng, a))
}

// Sparse starts from Uniform, zeroes each cell with probability frac and
// derives the marginals from the remaining data: slice sums rounded half
// to even, with the largest entry of every axis after the first adjusted
// so all totals agree.
//
// Errors: ErrNilRand, ndarray.ErrBadShape, ErrBadParameter.
func Sparse(rng *rand.Rand, shape []int, frac float64) (Problem, error) {
	if err := checkUnit("frac", frac); err != nil {
		return Problem{}, err
	}
	base, err := Uniform(rng, shape)
	if err != nil {
		return Problem{}, err
	}
	a := base.Data
	data := a.Raw()
	for i := range data {
		if rng.Float64() < frac {
			data[i] = 0
		}
	}

	sums := a.Marginals()
	marginals := make([][]int, len(sums))
	for axis, s := range sums {
		marginals[axis] = make([]int, len(s))
		for i, v := range s {
			marginals[axis][i] = int(math.RoundToEven(v))
		}
	}
	first := sumInts(marginals[0])
	for axis := 1; axis < len(marginals); axis++ {
		if diff := sumInts(marginals[axis]) - first; diff != 0 {
			marginals[axis][argmax(marginals[axis])] -= diff
		}
	}

	return balance(a, marginals)
}

func checkUnit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%s %v: %w", name, v, ErrBadParameter)
	}

	return nil
}

func uniformData(rng *rand.Rand, shape []int, lo, hi float64) (*ndarray.Array, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	a, err := ndarray.New(shape...)
	if err != nil {
		return nil, fmt.Errorf("randdata: %w", err)
	}
	data := a.Raw()
	for i := range data {
		data[i] = lo + (hi-lo)*rng.Float64()
	}

	return a, nil
}

// drawMarginals draws one integer marginal per axis, each totalling
// MeanCell·size.
func drawMarginals(rng *rand.Rand, a *ndarray.Array) [][]int {
	total := MeanCell * a.Size()
	marginals := make([][]int, a.NDim())
	for axis := range marginals {
		n := a.Dim(axis)
		w := make([]float64, n)
		var sum float64
		for i := range w {
			w[i] = 0.5 + 0.5*rng.Float64()
			sum += w[i]
		}
		m := make([]int, n)
		for i := range m {
			m[i] = int(math.RoundToEven(w[i] * float64(total) / sum))
		}
		m[0] = total - sumInts(m[1:])
		marginals[axis] = m
	}

	return marginals
}

func balance(a *ndarray.Array, marginals [][]int) (Problem, error) {
	targets := make([][]float64, len(marginals))
	for axis, m := range marginals {
		targets[axis] = make([]float64, len(m))
		for i, v := range m {
			targets[axis][i] = float64(v)
		}
	}
	opts := ipf.DefaultOptions()
	opts.Threshold = balanceThreshold
	res, err := ipf.Balance(a, targets, opts)
	if err != nil {
		return Problem{}, fmt.Errorf("randdata: balance: %w", err)
	}

	return Problem{
		Data:      res.Data,
		Marginals: marginals,
		Converged: res.Converged,
		Reachable: reachable(res.Data, marginals),
	}, nil
}

// reachable reports whether no slice of the ceiled array falls short of
// its target.
func reachable(a *ndarray.Array, marginals [][]int) bool {
	c := a.Clone()
	c.Ceil()
	for axis, sums := range c.Marginals() {
		for i, v := range sums {
			if v < float64(marginals[axis][i]) {
				return false
			}
		}
	}

	return true
}

func sumInts(v []int) int {
	var s int
	for _, x := range v {
		s += x
	}

	return s
}

// argmax returns the first index of the largest entry.
func argmax(v []int) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}

	return best
}

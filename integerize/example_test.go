package integerize_test

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/integerize/integerize"
	"github.com/katalvlaran/integerize/matrix"
)

// ExampleVector rounds fractional shares to a control of one.
func ExampleVector() {
	out, err := integerize.Vector([]float64{0.3, 0.3, 0.4}, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)

	zero, _ := integerize.Vector([]float64{0, 0, 0}, 2)
	fmt.Println(zero)
	// Output:
	// [0 0 1]
	// [1 1 0]
}

// ExampleVector_weightedRandom draws the decremented cells with a seeded
// generator; the same seed always yields the same result.
func ExampleVector_weightedRandom() {
	values := []float64{1.25, 2.5, 0.75}
	a, _ := integerize.Vector(values, 4,
		integerize.WithPolicy(integerize.PolicyWeightedRandom),
		integerize.WithRand(rand.New(rand.NewSource(7))))
	b, _ := integerize.Vector(values, 4,
		integerize.WithPolicy(integerize.PolicyWeightedRandom),
		integerize.WithRand(rand.New(rand.NewSource(7))))
	fmt.Println(fmt.Sprint(a) == fmt.Sprint(b), a[0]+a[1]+a[2])
	// Output:
	// true 4
}

// ExampleBiproportional balances a 2×2 matrix to row and column controls.
func ExampleBiproportional() {
	m, _ := matrix.NewDenseFrom([][]float64{
		{1.4, 1.4},
		{1.2, 1.0},
	})
	out, err := integerize.Biproportional(m, []int{3, 2}, []int{3, 2})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output:
	// [[1 2] [2 0]]
}

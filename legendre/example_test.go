package legendre_test

import (
	"fmt"
	"math"

	"github.com/gaussquad/gaussquad/legendre"
)

func ExampleIntegrate() {
	v, err := legendre.Integrate(func(x float64) float64 { return math.Sin(x * x) }, 0, math.Pi, 20)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.8f\n", v)
	// Output: 0.77265171
}

func ExampleNewRule() {
	rule, err := legendre.NewRule(3)
	if err != nil {
		panic(err)
	}
	for i := range rule.Nodes {
		fmt.Printf("x=%+.6f w=%.6f\n", rule.Nodes[i], rule.Weights[i])
	}
	// Output:
	// x=-0.774597 w=0.555556
	// x=+0.000000 w=0.888889
	// x=+0.774597 w=0.555556
}

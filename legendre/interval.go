package legendre

import (
	"fmt"
	"math"

	"github.com/gaussquad/gaussquad/utils/structs"
)

// Interval is the integration interval [A, B].
// A > B is allowed and flips the sign of the integral; A == B yields a zero integral.
type Interval struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// CanonicalInterval is [-1, 1], the interval on which rules are generated.
var CanonicalInterval = Interval{A: -1, B: 1}

// Validate returns an error wrapping [ErrInvalidInterval] if a bound is NaN or infinite.
func (i Interval) Validate() error {
	if math.IsNaN(i.A) || math.IsNaN(i.B) || math.IsInf(i.A, 0) || math.IsInf(i.B, 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, i.A, i.B)
	}
	return nil
}

// Length returns B - A, which is negative for a reversed interval.
func (i Interval) Length() float64 {
	return i.B - i.A
}

// Degenerate returns true if A == B.
func (i Interval) Degenerate() bool {
	return i.A == i.B
}

// Reverse returns [B, A].
func (i Interval) Reverse() Interval {
	return Interval{A: i.B, B: i.A}
}

// Map rescales a canonical rule to the interval:
//
//	x' = (b-a)/2 * x + (b+a)/2
//	w' = (b-a)/2 * w
//
// The mapped weights sum to B - A.
//
// The nodes stay finite for any finite bounds. The weights of a rule whose
// span B - A exceeds math.MaxFloat64 may overflow, since the canonical weights
// can be slightly above 1.
func (i Interval) Map(r Rule) MappedRule {

	// Halves first: h and c stay finite when b-a overflows.
	h := 0.5*i.B - 0.5*i.A
	c := 0.5*i.B + 0.5*i.A

	nodes := make(structs.Vector[float64], len(r.Nodes))
	weights := make(structs.Vector[float64], len(r.Weights))

	for j := range r.Nodes {
		nodes[j] = h*r.Nodes[j] + c
		weights[j] = h * r.Weights[j]
	}

	return MappedRule{Interval: i, Nodes: nodes, Weights: weights}
}

// MappedRule is a Gauss-Legendre rule rescaled to an arbitrary interval.
type MappedRule struct {
	Interval Interval
	Nodes    structs.Vector[float64]
	Weights  structs.Vector[float64]
}

// Order returns the number of points N of the rule.
func (r MappedRule) Order() int {
	return len(r.Nodes)
}

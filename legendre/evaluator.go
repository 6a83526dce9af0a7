package legendre

import (
	"errors"
	"fmt"
	"math"

	"github.com/gaussquad/gaussquad/utils/structs"
)

// Evaluator computes weighted sums of integrand values at the nodes of a [MappedRule].
// It is safe for concurrent use.
type Evaluator struct {
	pool structs.BufferPool[*evaluatorBuffer]
}

type evaluatorBuffer struct {
	x, y []float64
}

// NewEvaluator returns a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		pool: structs.NewSyncPool(func() *evaluatorBuffer {
			return new(evaluatorBuffer)
		}),
	}
}

// Integrate returns sum_i w_i f(x_i) over the nodes and weights of r, summed in node order.
//
// A degenerate interval returns exactly 0 without evaluating f.
// If f fails, or returns NaN or ±Inf at a node, Integrate returns an error wrapping
// an [*IntegrandEvaluationError] that identifies the node.
func (eval *Evaluator) Integrate(r MappedRule, f Integrand) (value float64, err error) {

	if r.Interval.Degenerate() {
		return 0, nil
	}

	n := r.Order()

	buf := eval.pool.Get()
	defer eval.pool.Put(buf)

	if cap(buf.x) < n {
		buf.x = make([]float64, n)
		buf.y = make([]float64, n)
	}

	// The integrand sees a private copy of the nodes.
	x, y := buf.x[:n], buf.y[:n]
	copy(x, r.Nodes)

	if err = f.Evaluate(x, y); err != nil {
		var ierr *IntegrandEvaluationError
		if !errors.As(err, &ierr) {
			err = &IntegrandEvaluationError{Index: -1, Node: math.NaN(), Value: math.NaN(), Err: err}
		}
		return 0, fmt.Errorf("legendre.Evaluator.Integrate: %w", err)
	}

	for i := range y {
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return 0, fmt.Errorf("legendre.Evaluator.Integrate: %w", &IntegrandEvaluationError{Index: i, Node: r.Nodes[i], Value: y[i]})
		}
		value += r.Weights[i] * y[i]
	}

	return value, nil
}

// Integrate approximates the integral of f over [a, b] with the n-point Gauss-Legendre rule.
// See [NewIntegrand] for the accepted types of f.
func Integrate(f interface{}, a, b float64, n int) (value float64, err error) {

	interval := Interval{A: a, B: b}
	if err = interval.Validate(); err != nil {
		return 0, fmt.Errorf("legendre.Integrate: %w", err)
	}

	integrand, err := NewIntegrand(f)
	if err != nil {
		return 0, fmt.Errorf("legendre.Integrate: %w", err)
	}

	rule, err := NewRule(n)
	if err != nil {
		return 0, fmt.Errorf("legendre.Integrate: %w", err)
	}

	return NewEvaluator().Integrate(interval.Map(rule), integrand)
}

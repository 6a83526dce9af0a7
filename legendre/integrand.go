package legendre

import (
	"fmt"
	"math"
)

// Integrand is a real function of one real variable.
// Implementations must be pure: the result may only depend on the input.
type Integrand interface {
	// Evaluate writes f(x[i]) into y[i] for every i, with len(x) == len(y).
	// It must not modify x.
	Evaluate(x, y []float64) error
}

// Func adapts a scalar function to the [Integrand] interface.
type Func func(x float64) float64

// Evaluate implements [Integrand].
func (f Func) Evaluate(x, y []float64) error {
	for i := range x {
		y[i] = f(x[i])
	}
	return nil
}

// FuncE adapts a scalar function that may fail to the [Integrand] interface.
// The first failure is reported as an [IntegrandEvaluationError] carrying the node index.
type FuncE func(x float64) (float64, error)

// Evaluate implements [Integrand].
func (f FuncE) Evaluate(x, y []float64) (err error) {
	for i := range x {
		if y[i], err = f(x[i]); err != nil {
			return &IntegrandEvaluationError{Index: i, Node: x[i], Value: math.NaN(), Err: err}
		}
	}
	return nil
}

// VectorFunc adapts an element-wise vectorised function to the [Integrand] interface.
type VectorFunc func(x, y []float64) error

// Evaluate implements [Integrand].
func (f VectorFunc) Evaluate(x, y []float64) error {
	return f(x, y)
}

// NewIntegrand returns an [Integrand] from f.
// f.(type) can be either:
//   - Integrand
//   - func(float64) float64
//   - func(float64) (float64, error)
//   - func(x, y []float64) error
func NewIntegrand(f interface{}) (Integrand, error) {
	switch f := f.(type) {
	case Integrand:
		return f, nil
	case func(x float64) float64:
		return Func(f), nil
	case func(x float64) (float64, error):
		return FuncE(f), nil
	case func(x, y []float64) error:
		return VectorFunc(f), nil
	default:
		return nil, fmt.Errorf("legendre.NewIntegrand: invalid f.(type): must be Integrand, func(float64) float64, func(float64) (float64, error) or func([]float64, []float64) error but is %T", f)
	}
}

// Package convergence sweeps Gauss-Legendre rules of increasing order over a fixed interval
// and records how the approximations of an integral settle.
//
// A sweep is described by [Parameters], run by a [Sweeper] and produces a [Series]
// of approximations in increasing order. A [Report] summarises the successive
// differences over the tail of a series.
package convergence

import (
	"fmt"
	"math"

	"github.com/gaussquad/gaussquad/legendre"
	"github.com/gaussquad/gaussquad/utils"
)

// SinSquare is f(x) = sin(x^2), whose integral over [0, pi] is the default sweep.
func SinSquare(x float64) float64 {
	return math.Sin(x * x)
}

// Integrands is the registry of named integrands accepted by [Lookup].
var Integrands = map[string]legendre.Integrand{
	"sin2": legendre.Func(SinSquare),
	"exp":  legendre.Func(math.Exp),
	"cos":  legendre.Func(math.Cos),
	"poly3": legendre.Func(func(x float64) float64 {
		return ((x-2)*x+1)*x - 3
	}),
}

// IntegrandNames returns the sorted names of the registered integrands.
func IntegrandNames() []string {
	return utils.GetSortedKeys(Integrands)
}

// Lookup returns the registered integrand with the given name.
func Lookup(name string) (legendre.Integrand, error) {
	if f, ok := Integrands[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("convergence.Lookup: unknown integrand %q, available: %v", name, IntegrandNames())
}

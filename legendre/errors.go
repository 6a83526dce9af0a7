package legendre

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder is returned when the number of quadrature points is smaller than 1.
	ErrInvalidOrder = errors.New("invalid quadrature order")

	// ErrInvalidInterval is returned when an integration bound is NaN or infinite.
	ErrInvalidInterval = errors.New("invalid integration interval")

	// ErrIntegrandEvaluation is matched by every [IntegrandEvaluationError].
	ErrIntegrandEvaluation = errors.New("integrand evaluation failed")
)

// IntegrandEvaluationError reports an integrand that failed, or returned
// NaN or ±Inf, at a quadrature node.
type IntegrandEvaluationError struct {
	// Index is the index of the offending node in the mapped rule,
	// or -1 if a vectorised integrand failed as a whole.
	Index int
	// Node is the abscissa at which the integrand was evaluated.
	Node float64
	// Value is the value returned by the integrand, NaN if it returned an error.
	Value float64
	// Err is the error returned by the integrand, if any.
	Err error
}

func (e *IntegrandEvaluationError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("%s: %v", ErrIntegrandEvaluation, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s at node %d (x=%g): %v", ErrIntegrandEvaluation, e.Index, e.Node, e.Err)
	default:
		return fmt.Sprintf("%s at node %d (x=%g): non-finite value %g", ErrIntegrandEvaluation, e.Index, e.Node, e.Value)
	}
}

// Unwrap makes the error match both [ErrIntegrandEvaluation] and the
// error returned by the integrand.
func (e *IntegrandEvaluationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrIntegrandEvaluation}
	}
	return []error{ErrIntegrandEvaluation, e.Err}
}

package convergence

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/gaussquad/gaussquad/legendre"
	"github.com/gaussquad/gaussquad/utils"
)

var (
	// ErrInvalidRange is returned when the orders of a sweep do not form a non-empty range.
	ErrInvalidRange = errors.New("invalid order range")

	// ErrMissingApproximation marks the points of a decoded [Series] whose evaluation failed.
	ErrMissingApproximation = errors.New("missing approximation")
)

// Policy is the behavior of a sweep when an order fails.
type Policy int

const (
	// Abort stops the sweep at the failing order with the lowest N and returns its error.
	Abort = Policy(iota)
	// Skip records the failure on the point and continues with the next order.
	Skip
)

var policyNames = [...]string{Abort: "abort", Skip: "skip"}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(policyNames) {
		return nil, fmt.Errorf("invalid policy %d", int(p))
	}
	return []byte(policyNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, s := range policyNames {
		if s == name {
			*p = Policy(i)
			return nil
		}
	}
	return fmt.Errorf("invalid policy %q: must be one of %v", text, policyNames)
}

// ParametersLiteral is a literal representation of the parameters of a sweep.
// It has public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The [NewParametersFromLiteral] function is used to
// generate the actual checked parameters from the literal representation.
//
// The sweep evaluates the orders N = Start, Start+Step, ... while N <= End.
// Workers is the maximum number of orders evaluated concurrently, zero defaulting to one.
type ParametersLiteral struct {
	A       float64 `json:"a" yaml:"a"`
	B       float64 `json:"b" yaml:"b"`
	Start   int     `json:"start" yaml:"start"`
	End     int     `json:"end" yaml:"end"`
	Step    int     `json:"step" yaml:"step"`
	Workers int     `json:"workers,omitempty" yaml:"workers,omitempty"`
	Policy  Policy  `json:"policy" yaml:"policy"`
}

// DefaultParametersLiteral is the sweep of the integral of sin(x^2) over [0, pi] for N = 1, ..., 20.
var DefaultParametersLiteral = ParametersLiteral{
	A:       0,
	B:       math.Pi,
	Start:   1,
	End:     20,
	Step:    1,
	Workers: 1,
	Policy:  Abort,
}

// Parameters represents a checked set of parameters for a sweep.
// It is immutable and safe for concurrent use.
type Parameters struct {
	interval legendre.Interval
	start    int
	end      int
	step     int
	workers  int
	policy   Policy
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a [ParametersLiteral].
// It returns an error wrapping [legendre.ErrInvalidOrder] if Start < 1, [ErrInvalidRange] if
// Step < 1 or End < Start and [legendre.ErrInvalidInterval] if a bound is NaN or infinite.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	interval := legendre.Interval{A: pl.A, B: pl.B}
	if err = interval.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("convergence.NewParametersFromLiteral: %w", err)
	}

	if pl.Start < 1 {
		return Parameters{}, fmt.Errorf("convergence.NewParametersFromLiteral: %w: Start=%d", legendre.ErrInvalidOrder, pl.Start)
	}

	if pl.Step < 1 {
		return Parameters{}, fmt.Errorf("convergence.NewParametersFromLiteral: %w: Step=%d", ErrInvalidRange, pl.Step)
	}

	if pl.End < pl.Start {
		return Parameters{}, fmt.Errorf("convergence.NewParametersFromLiteral: %w: End=%d < Start=%d", ErrInvalidRange, pl.End, pl.Start)
	}

	switch {
	case pl.Workers == 0:
		pl.Workers = 1
	case pl.Workers < 0:
		return Parameters{}, fmt.Errorf("convergence.NewParametersFromLiteral: invalid Workers=%d: must be non-negative", pl.Workers)
	}

	if _, err = pl.Policy.MarshalText(); err != nil {
		return Parameters{}, fmt.Errorf("convergence.NewParametersFromLiteral: %w", err)
	}

	return Parameters{
		interval: interval,
		start:    pl.Start,
		end:      pl.End,
		step:     pl.Step,
		workers:  pl.Workers,
		policy:   pl.Policy,
	}, nil
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		A:       p.interval.A,
		B:       p.interval.B,
		Start:   p.start,
		End:     p.end,
		Step:    p.step,
		Workers: p.workers,
		Policy:  p.policy,
	}
}

// Interval returns the integration interval.
func (p Parameters) Interval() legendre.Interval {
	return p.interval
}

// Orders returns the orders N of the sweep in increasing order.
func (p Parameters) Orders() []int {
	return utils.Range(p.start, p.end, p.step)
}

// Workers returns the maximum number of orders evaluated concurrently.
func (p Parameters) Workers() int {
	return p.workers
}

// Policy returns the failure policy of the sweep.
func (p Parameters) Policy() Policy {
	return p.policy
}

// Equal returns true if the receiver and other are the same parameters.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the encoding/json package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the encoding/json package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}

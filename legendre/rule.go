package legendre

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/gaussquad/gaussquad/utils/buffer"
	"github.com/gaussquad/gaussquad/utils/structs"
)

const (
	maxNewtonIterations = 100
	newtonTolerance     = 1e-15
)

// Rule is an N-point Gauss-Legendre rule on the canonical interval [-1, 1].
// Nodes are strictly increasing, Nodes[N-1-i] == -Nodes[i] and Weights[N-1-i] == Weights[i].
// A Rule is never modified after creation.
type Rule struct {
	Nodes   structs.Vector[float64]
	Weights structs.Vector[float64]
}

// NewRule returns the n-point Gauss-Legendre rule.
// It returns an error wrapping [ErrInvalidOrder] if n < 1.
func NewRule(n int) (r Rule, err error) {

	if n < 1 {
		return Rule{}, fmt.Errorf("legendre.NewRule: %w: n=%d", ErrInvalidOrder, n)
	}

	nodes := make(structs.Vector[float64], n)
	weights := make(structs.Vector[float64], n)

	nf := float64(n)

	// Tricomi: x_i ~ (1 - 1/(8n^2) + 1/(8n^3)) cos(pi (i - 1/4) / (n + 1/2))
	scale := 1 - 1/(8*nf*nf) + 1/(8*nf*nf*nf)

	for i := 0; i < (n+1)/2; i++ {

		var x float64

		// The middle root of an odd order is exactly zero.
		if n&1 == 0 || i != n/2 {
			x = newton(n, scale*math.Cos(math.Pi*(float64(i)+0.75)/(nf+0.5)))
		}

		_, dp := Evaluate(n, x)

		// (1-x)(1+x) keeps the relative accuracy of 1-x^2 close to the endpoints.
		w := 2 / ((1 - x) * (1 + x) * dp * dp)

		nodes[i] = -x
		nodes[n-1-i] = x
		weights[i] = w
		weights[n-1-i] = w
	}

	return Rule{Nodes: nodes, Weights: weights}, nil
}

func newton(n int, x float64) float64 {
	for iter := 0; iter < maxNewtonIterations; iter++ {
		p, dp := Evaluate(n, x)
		dx := p / dp
		x -= dx
		if math.Abs(dx) <= newtonTolerance {
			break
		}
	}
	return x
}

var (
	_ structs.CopyNewer[Rule] = Rule{}
	_ structs.Equatable[Rule] = Rule{}
	_ structs.BinarySizer     = Rule{}
)

// Order returns the number of points N of the rule.
func (r Rule) Order() int {
	return len(r.Nodes)
}

// CopyNew returns a deep copy of the rule.
func (r Rule) CopyNew() *Rule {
	return &Rule{
		Nodes:   *r.Nodes.CopyNew(),
		Weights: *r.Weights.CopyNew(),
	}
}

// Equal returns true if both rules have bit for bit identical nodes and weights.
func (r Rule) Equal(other *Rule) bool {
	return other != nil && r.Nodes.Equal(&other.Nodes) && r.Weights.Equal(&other.Weights)
}

// BinarySize returns the serialized size of the object in bytes.
func (r Rule) BinarySize() int {
	return r.Nodes.BinarySize() + r.Weights.BinarySize()
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (r Rule) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = r.Nodes.WriteTo(w); err != nil {
			return n + inc, fmt.Errorf("r.Nodes.WriteTo: %w", err)
		}

		n += inc

		if inc, err = r.Weights.WriteTo(w); err != nil {
			return n + inc, fmt.Errorf("r.Weights.WriteTo: %w", err)
		}

		return n + inc, w.Flush()

	default:
		return r.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
func (r *Rule) ReadFrom(rd io.Reader) (n int64, err error) {
	switch rd := rd.(type) {
	case buffer.Reader:

		var inc int64
		if inc, err = r.Nodes.ReadFrom(rd); err != nil {
			return n + inc, fmt.Errorf("r.Nodes.ReadFrom: %w", err)
		}

		n += inc

		if inc, err = r.Weights.ReadFrom(rd); err != nil {
			return n + inc, fmt.Errorf("r.Weights.ReadFrom: %w", err)
		}

		n += inc

		if len(r.Nodes) != len(r.Weights) {
			return n, fmt.Errorf("cannot ReadFrom: %d nodes but %d weights", len(r.Nodes), len(r.Weights))
		}

		if len(r.Nodes) == 0 {
			return n, fmt.Errorf("cannot ReadFrom: %w: n=0", ErrInvalidOrder)
		}

		return n, nil

	default:
		return r.ReadFrom(bufio.NewReader(rd))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (r Rule) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(r.BinarySize())
	_, err = r.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (r *Rule) UnmarshalBinary(p []byte) (err error) {
	_, err = r.ReadFrom(buffer.NewBuffer(p))
	return
}

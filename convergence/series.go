package convergence

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/zeebo/blake3"

	"github.com/gaussquad/gaussquad/legendre"
	"github.com/gaussquad/gaussquad/utils/buffer"
	"github.com/gaussquad/gaussquad/utils/structs"
)

// Point is the approximation of a sweep at a given order.
type Point struct {
	// N is the number of quadrature points.
	N int
	// Value is the approximation, NaN if Err is not nil.
	Value float64
	// Err is the error of the evaluation at this order.
	Err error
}

// Succeeded returns true if the point holds an approximation.
func (p Point) Succeeded() bool {
	return p.Err == nil
}

type jsonPoint struct {
	N     int      `json:"n"`
	Value *float64 `json:"value,omitempty"`
	Err   string   `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler. Failed points carry their error message instead of a value.
func (p Point) MarshalJSON() ([]byte, error) {
	jp := jsonPoint{N: p.N}
	if p.Err != nil {
		jp.Err = p.Err.Error()
	} else {
		jp.Value = &p.Value
	}
	return json.Marshal(jp)
}

// UnmarshalJSON implements json.Unmarshaler. The error of a failed point
// is restored as an error wrapping [ErrMissingApproximation].
func (p *Point) UnmarshalJSON(data []byte) (err error) {

	var jp jsonPoint
	if err = json.Unmarshal(data, &jp); err != nil {
		return
	}

	switch {
	case jp.Value != nil:
		*p = Point{N: jp.N, Value: *jp.Value}
	case jp.Err != "":
		*p = Point{N: jp.N, Value: math.NaN(), Err: fmt.Errorf("%w: %s", ErrMissingApproximation, jp.Err)}
	default:
		*p = Point{N: jp.N, Value: math.NaN(), Err: ErrMissingApproximation}
	}

	return
}

// Series is the sequence of approximations of a sweep, in increasing order N.
type Series struct {
	Interval legendre.Interval `json:"interval"`
	Points   []Point           `json:"points"`
}

var (
	_ structs.Equatable[Series] = Series{}
	_ structs.BinarySizer       = Series{}
)

// Len returns the number of points of the series.
func (s Series) Len() int {
	return len(s.Points)
}

// At returns the point of order n.
func (s Series) At(n int) (Point, bool) {
	for _, p := range s.Points {
		if p.N == n {
			return p, true
		}
	}
	return Point{}, false
}

// Orders returns the orders of the points of the series.
func (s Series) Orders() (orders []int) {
	orders = make([]int, len(s.Points))
	for i, p := range s.Points {
		orders[i] = p.N
	}
	return
}

// Values returns the approximations of the series, NaN for failed points.
func (s Series) Values() (values []float64) {
	values = make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return
}

// Succeeded returns the points holding an approximation.
func (s Series) Succeeded() (points []Point) {
	for _, p := range s.Points {
		if p.Succeeded() {
			points = append(points, p)
		}
	}
	return
}

// Failures returns the points whose evaluation failed.
func (s Series) Failures() (points []Point) {
	for _, p := range s.Points {
		if !p.Succeeded() {
			points = append(points, p)
		}
	}
	return
}

// Last returns the successful point of highest order.
func (s Series) Last() (Point, bool) {
	for i := len(s.Points) - 1; i >= 0; i-- {
		if s.Points[i].Succeeded() {
			return s.Points[i], true
		}
	}
	return Point{}, false
}

// Differences returns v[k] - v[k-1] between consecutive successful points.
func (s Series) Differences() (diffs []float64) {
	points := s.Succeeded()
	for k := 1; k < len(points); k++ {
		diffs = append(diffs, points[k].Value-points[k-1].Value)
	}
	return
}

// Equal returns true if both series hold the same orders and the same values bit for bit.
// Errors are compared by success only.
func (s Series) Equal(other *Series) bool {

	if other == nil || s.Interval != other.Interval || len(s.Points) != len(other.Points) {
		return false
	}

	for i, p := range s.Points {
		q := other.Points[i]
		if p.N != q.N || p.Succeeded() != q.Succeeded() || math.Float64bits(p.Value) != math.Float64bits(q.Value) {
			return false
		}
	}

	return true
}

// BinarySize returns the serialized size of the object in bytes.
func (s Series) BinarySize() int {
	return 16 + 8 + len(s.Points)*17
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
// Only the success of each point is kept, not its error.
//
// Unless w implements the buffer.Writer interface (see utils/buffer/buffer.go),
// it will be wrapped into a bufio.Writer.
func (s Series) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = buffer.WriteFloat64Slice(w, []float64{s.Interval.A, s.Interval.B}); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteFloat64Slice: %w", err)
		}
		n += inc

		if inc, err = buffer.WriteInt(w, len(s.Points)); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteInt: %w", err)
		}
		n += inc

		for _, p := range s.Points {

			if inc, err = buffer.WriteInt(w, p.N); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteInt: %w", err)
			}
			n += inc

			var ok uint8
			if p.Succeeded() {
				ok = 1
			}

			if inc, err = buffer.WriteUint8(w, ok); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteUint8: %w", err)
			}
			n += inc

			if inc, err = buffer.WriteFloat64(w, p.Value); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteFloat64: %w", err)
			}
			n += inc
		}

		return n, w.Flush()

	default:
		return s.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface. Failed points are restored with an error
// equal to [ErrMissingApproximation].
//
// Unless r implements the buffer.Reader interface (see utils/buffer/buffer.go),
// it will be wrapped into a bufio.Reader.
func (s *Series) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		bounds := make([]float64, 2)
		if inc, err = buffer.ReadFloat64Slice(r, bounds); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadFloat64Slice: %w", err)
		}
		n += inc

		var size int
		if inc, err = buffer.ReadInt(r, &size); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadInt: %w", err)
		}
		n += inc

		if size < 0 || size > math.MaxInt32 {
			return n, fmt.Errorf("cannot ReadFrom: invalid series size %d", size)
		}

		s.Interval = legendre.Interval{A: bounds[0], B: bounds[1]}
		s.Points = make([]Point, size)

		for i := range s.Points {

			p := &s.Points[i]

			if inc, err = buffer.ReadInt(r, &p.N); err != nil {
				return n + inc, fmt.Errorf("buffer.ReadInt: %w", err)
			}
			n += inc

			var ok uint8
			if inc, err = buffer.ReadUint8(r, &ok); err != nil {
				return n + inc, fmt.Errorf("buffer.ReadUint8: %w", err)
			}
			n += inc

			if inc, err = buffer.ReadFloat64(r, &p.Value); err != nil {
				return n + inc, fmt.Errorf("buffer.ReadFloat64: %w", err)
			}
			n += inc

			if ok == 0 {
				p.Err = ErrMissingApproximation
			}
		}

		return n, nil

	default:
		return s.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (s Series) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(s.BinarySize())
	_, err = s.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (s *Series) UnmarshalBinary(p []byte) (err error) {
	_, err = s.ReadFrom(buffer.NewBuffer(p))
	return
}

// Digest returns the hexadecimal blake3 hash of the binary form of the series.
// Errors are reduced to a failure flag, as in [Series.WriteTo].
func (s Series) Digest() (string, error) {
	hasher := blake3.New()
	if _, err := s.WriteTo(hasher); err != nil {
		return "", fmt.Errorf("convergence.Series.Digest: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

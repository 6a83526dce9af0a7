package structs

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/gaussquad/gaussquad/utils/buffer"
)

// Number is the set of component types supported by Vector.
type Number interface {
	constraints.Integer | constraints.Float
}

// Vector is a slice of real or integer components with a binary codec.
// Every component is serialized on 8 bytes: floats as their IEEE 754 float64
// bits and integers as a two's complement uint64.
type Vector[T Number] []T

// CopyNew returns a deep copy of the object.
func (v Vector[T]) CopyNew() *Vector[T] {
	vcpy := Vector[T](make([]T, len(v)))
	copy(vcpy, v)
	return &vcpy
}

// BinarySize returns the serialized size of the object in bytes.
func (v Vector[T]) BinarySize() (size int) {
	return 8 + len(v)*8
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface (see utils/buffer/buffer.go),
// it will be wrapped into a bufio.Writer. Since this requires allocations, it
// is preferable to pass a buffer.Writer directly.
func (v Vector[T]) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteInt(w, len(v)); err != nil {
			return inc, fmt.Errorf("buffer.WriteInt: %w", err)
		}

		n += inc

		var t T
		if isFloat(t) {
			f := make([]float64, len(v))
			for i := range v {
				f[i] = float64(v[i])
			}
			if inc, err = buffer.WriteFloat64Slice(w, f); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteFloat64Slice[%T]: %w", t, err)
			}
		} else {
			u := make([]uint64, len(v))
			for i := range v {
				u[i] = uint64(int64(v[i]))
			}
			if inc, err = buffer.WriteUint64Slice(w, u); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteUint64Slice[%T]: %w", t, err)
			}
		}

		n += inc

		return n, w.Flush()

	default:
		return v.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see utils/buffer/buffer.go),
// it will be wrapped into a bufio.Reader.
func (v *Vector[T]) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		var size int
		if inc, err = buffer.ReadInt(r, &size); err != nil {
			return inc, fmt.Errorf("buffer.ReadInt: %w", err)
		}

		n += inc

		if size < 0 || size > math.MaxInt32 {
			return n, fmt.Errorf("cannot ReadFrom: invalid vector size %d", size)
		}

		if cap(*v) < size {
			*v = make([]T, size)
		}

		*v = (*v)[:size]

		var t T
		if isFloat(t) {
			f := make([]float64, size)
			if inc, err = buffer.ReadFloat64Slice(r, f); err != nil {
				return n + inc, fmt.Errorf("buffer.ReadFloat64Slice[%T]: %w", t, err)
			}
			for i := range f {
				(*v)[i] = T(f[i])
			}
		} else {
			u := make([]uint64, size)
			if inc, err = buffer.ReadUint64Slice(r, u); err != nil {
				return n + inc, fmt.Errorf("buffer.ReadUint64Slice[%T]: %w", t, err)
			}
			for i := range u {
				(*v)[i] = T(int64(u[i]))
			}
		}

		return n + inc, nil

	default:
		return v.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (v Vector[T]) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(v.BinarySize())
	_, err = v.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (v *Vector[T]) UnmarshalBinary(p []byte) (err error) {
	_, err = v.ReadFrom(buffer.NewBuffer(p))
	return
}

// Equal performs a deep equal. Floats are compared bit for bit, so NaN
// components are equal to themselves.
func (v Vector[T]) Equal(other *Vector[T]) bool {

	if other == nil || len(v) != len(*other) {
		return false
	}

	var t T
	for i := range v {
		if isFloat(t) {
			if math.Float64bits(float64(v[i])) != math.Float64bits(float64((*other)[i])) {
				return false
			}
		} else if v[i] != (*other)[i] {
			return false
		}
	}

	return true
}

func isFloat[T Number](t T) bool {
	switch any(t).(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

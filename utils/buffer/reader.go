package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ReadUint8 reads a byte from r into c.
func ReadUint8(r Reader, c *uint8) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint8: c is nil")
	}

	var bb = [1]byte{}

	var nint int
	if nint, err = r.Read(bb[:]); err != nil {
		return int64(nint), err
	}

	*c = bb[0]

	return int64(nint), nil
}

// ReadUint8Slice reads len(c) bytes from r into c.
func ReadUint8Slice(r Reader, c []uint8) (n int64, err error) {
	nint, err := io.ReadFull(r, c)
	return int64(nint), err
}

// ReadUint64 reads a uint64 from r into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var bb = [8]byte{}

	var nint int
	if nint, err = io.ReadFull(r, bb[:]); err != nil {
		return int64(nint), err
	}

	*c = binary.LittleEndian.Uint64(bb[:])

	return int64(nint), nil
}

// ReadInt reads an int written with WriteInt from r into c.
func ReadInt(r Reader, c *int) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadInt: c is nil")
	}

	var u uint64
	if n, err = ReadUint64(r, &u); err != nil {
		return
	}

	*c = int(u)

	return
}

// ReadFloat64 reads a float64 written with WriteFloat64 from r into c.
func ReadFloat64(r Reader, c *float64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadFloat64: c is nil")
	}

	var u uint64
	if n, err = ReadUint64(r, &u); err != nil {
		return
	}

	*c = math.Float64frombits(u)

	return
}

// ReadUint64Slice reads len(c) uint64 from r into c.
func ReadUint64Slice(r Reader, c []uint64) (n int64, err error) {
	return readSlice64(r, c, func(x uint64) uint64 { return x })
}

// ReadFloat64Slice reads len(c) float64 from r into c.
func ReadFloat64Slice(r Reader, c []float64) (n int64, err error) {
	return readSlice64(r, c, math.Float64frombits)
}

func readSlice64[T any](r Reader, c []T, from func(uint64) T) (n int64, err error) {

	if len(c) == 0 {
		return
	}

	var slice []byte

	// Avoid EOF
	size := r.Size()
	if len(c)<<3 < size {
		size = len(c) << 3
	}

	if slice, err = r.Peek(size); err != nil {
		return
	}

	buffered := len(slice) >> 3

	if buffered == 0 {
		return 0, fmt.Errorf("cannot read slice: %w", io.ErrUnexpectedEOF)
	}

	if N := len(c); N <= buffered {

		for i, j := 0, 0; i < N; i, j = i+1, j+8 {
			c[i] = from(binary.LittleEndian.Uint64(slice[j:]))
		}

		inc, err := r.Discard(N << 3)
		return int64(inc), err
	}

	for i, j := 0, 0; i < buffered; i, j = i+1, j+8 {
		c[i] = from(binary.LittleEndian.Uint64(slice[j:]))
	}

	var inc int
	if inc, err = r.Discard(buffered << 3); err != nil {
		return n + int64(inc), err
	}

	n += int64(inc)

	// Recurses on the remaining slice to fill
	var inc64 int64
	if inc64, err = readSlice64(r, c[buffered:], from); err != nil {
		return n + inc64, err
	}

	return n + inc64, nil
}

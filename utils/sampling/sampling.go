// Package sampling implements deterministic sampling of real values from a keyed PRNG.
package sampling

import (
	"encoding/binary"
	"fmt"
)

// Float64Sampler draws uniformly distributed float64 values from a PRNG.
type Float64Sampler struct {
	prng PRNG
	buf  [8]byte
}

// NewFloat64Sampler returns a sampler reading from prng.
func NewFloat64Sampler(prng PRNG) *Float64Sampler {
	return &Float64Sampler{prng: prng}
}

// Read returns a value in [min, max).
// It panics if the underlying PRNG fails.
func (s *Float64Sampler) Read(min, max float64) float64 {
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(fmt.Errorf("sampling.Float64Sampler.Read: %w", err))
	}
	// 53 random bits map exactly onto the float64 mantissa.
	f := float64(binary.LittleEndian.Uint64(s.buf[:])>>11) / (1 << 53)
	return min + f*(max-min)
}

// ReadNew returns a new slice of n values in [min, max).
func (s *Float64Sampler) ReadNew(n int, min, max float64) (values []float64) {
	values = make([]float64, n)
	for i := range values {
		values[i] = s.Read(min, max)
	}
	return
}

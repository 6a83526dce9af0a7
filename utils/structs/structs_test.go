package structs

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStructs(t *testing.T) {
	t.Run("Vector/Float64/Serialization&Equatable", func(t *testing.T) {
		testVector[float64](t)
	})

	t.Run("Vector/Int/Serialization&Equatable", func(t *testing.T) {
		testVector[int](t)
	})

	t.Run("Vector/Uint8/Serialization&Equatable", func(t *testing.T) {
		testVector[uint8](t)
	})

	t.Run("Vector/Float64/NegativeZeroAndNaN", func(t *testing.T) {
		v := Vector[float64]{math.Copysign(0, -1), math.NaN(), math.Inf(-1)}
		data, err := v.MarshalBinary()
		require.NoError(t, err)
		vNew := Vector[float64]{}
		require.NoError(t, vNew.UnmarshalBinary(data))
		require.True(t, v.Equal(&vNew))
		require.False(t, v.Equal(&Vector[float64]{0, math.NaN(), math.Inf(-1)}))
	})

	t.Run("Vector/Int/Negative", func(t *testing.T) {
		v := Vector[int]{-3, -1, 0, 1 << 40}
		var buf bytes.Buffer
		_, err := v.WriteTo(&buf)
		require.NoError(t, err)
		vNew := Vector[int]{}
		_, err = vNew.ReadFrom(&buf)
		require.NoError(t, err)
		require.Equal(t, v, vNew)
	})

	t.Run("Vector/CopyNew", func(t *testing.T) {
		v := Vector[float64]{1, 2, 3}
		c := v.CopyNew()
		(*c)[0] = 7
		require.Equal(t, 1.0, v[0])
	})

	t.Run("SyncPool", func(t *testing.T) {
		pool := NewSyncPool(func() *[]float64 {
			b := make([]float64, 4)
			return &b
		})
		b := pool.Get()
		require.Len(t, *b, 4)
		pool.Put(b)
	})
}

func testVector[T Number](t *testing.T) {
	v := Vector[T](make([]T, 64))
	for i := range v {
		v[i] = T(i)
	}
	data, err := v.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, v.BinarySize())
	vNew := Vector[T]{}
	require.NoError(t, vNew.UnmarshalBinary(data))
	require.True(t, cmp.Equal(v, vNew)) // also tests Equatable
}

package legendre

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/gaussquad/gaussquad/utils"
	"github.com/gaussquad/gaussquad/utils/bignum"
	"github.com/gaussquad/gaussquad/utils/sampling"
)

var testKey = []byte("gauss-legendre")

func testString(opname string, n int) string {
	return fmt.Sprintf("%s/N=%d", opname, n)
}

func testOrders() []int {
	return append(utils.Range(1, 20, 1), 32, 64, 100)
}

func TestEvaluate(t *testing.T) {

	t.Run("P0", func(t *testing.T) {
		p, dp := Evaluate(0, 0.3)
		require.Equal(t, 1.0, p)
		require.Equal(t, 0.0, dp)
	})

	t.Run("P2", func(t *testing.T) {
		p, dp := Evaluate(2, 0.5)
		require.InDelta(t, -0.125, p, 1e-16)
		require.InDelta(t, 1.5, dp, 1e-15)
	})

	t.Run("P3", func(t *testing.T) {
		p, dp := Evaluate(3, 0.5)
		require.InDelta(t, -0.4375, p, 1e-16)
		require.InDelta(t, 0.375, dp, 1e-15)
	})

	t.Run("Endpoints", func(t *testing.T) {
		for n := 1; n < 8; n++ {
			p, dp := Evaluate(n, 1)
			require.Equal(t, 1.0, p)
			require.Equal(t, float64(n*(n+1))/2, dp)

			p, dp = Evaluate(n, -1)
			require.Equal(t, math.Pow(-1, float64(n)), p)
			require.Equal(t, math.Pow(-1, float64(n+1))*float64(n*(n+1))/2, dp)
		}
	})
}

func TestRule(t *testing.T) {

	for _, n := range testOrders() {

		rule, err := NewRule(n)
		require.NoError(t, err)

		t.Run(testString("Invariants", n), func(t *testing.T) {
			require.Equal(t, n, rule.Order())
			require.Len(t, rule.Weights, n)
			require.True(t, utils.IsStrictlyIncreasing(rule.Nodes))

			var sum float64
			for i := 0; i < n; i++ {
				require.Greater(t, rule.Nodes[i], -1.0)
				require.Less(t, rule.Nodes[i], 1.0)
				require.Greater(t, rule.Weights[i], 0.0)
				require.Equal(t, -rule.Nodes[i], rule.Nodes[n-1-i])
				require.Equal(t, rule.Weights[i], rule.Weights[n-1-i])
				sum += rule.Weights[i]
			}

			require.InEpsilon(t, 2.0, sum, 1e-9)

			if n&1 == 1 {
				require.Equal(t, 0.0, rule.Nodes[n/2])
				require.False(t, math.Signbit(rule.Nodes[n/2]))
			}
		})

		t.Run(testString("ReferenceTable", n), func(t *testing.T) {
			verifyAgainstReference(t, rule, 1e-14, 1e-12)
		})
	}

	t.Run(testString("ReferenceTable", 1000), func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping large reference table in short mode")
		}
		rule, err := NewRule(1000)
		require.NoError(t, err)
		verifyAgainstReference(t, rule, 1e-13, 1e-9)
	})

	t.Run("ClosedForm", func(t *testing.T) {
		rule, err := NewRule(1)
		require.NoError(t, err)
		require.Equal(t, []float64{0}, []float64(rule.Nodes))
		require.Equal(t, []float64{2}, []float64(rule.Weights))

		rule, err = NewRule(2)
		require.NoError(t, err)
		require.InDelta(t, 1/math.Sqrt(3), rule.Nodes[1], 1e-15)
		require.InDelta(t, 1.0, rule.Weights[0], 1e-15)

		rule, err = NewRule(3)
		require.NoError(t, err)
		require.InDelta(t, math.Sqrt(0.6), rule.Nodes[2], 1e-15)
		require.InDelta(t, 8.0/9.0, rule.Weights[1], 1e-15)
		require.InDelta(t, 5.0/9.0, rule.Weights[0], 1e-15)

		rule, err = NewRule(5)
		require.NoError(t, err)
		require.InDelta(t, 0.90617984593866399280, rule.Nodes[4], 1e-15)
		require.InDelta(t, 0.53846931010568309104, rule.Nodes[3], 1e-15)
		require.InDelta(t, 0.23692688505618908751, rule.Weights[0], 1e-15)
		require.InDelta(t, 0.47862867049936646804, rule.Weights[1], 1e-15)
		require.InDelta(t, 0.56888888888888888889, rule.Weights[2], 1e-15)
	})

	t.Run("InvalidOrder", func(t *testing.T) {
		for _, n := range []int{0, -3} {
			_, err := NewRule(n)
			require.ErrorIs(t, err, ErrInvalidOrder)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		r0, err := NewRule(17)
		require.NoError(t, err)
		r1, err := NewRule(17)
		require.NoError(t, err)
		require.True(t, r0.Equal(&r1))
	})

	t.Run("Marshaller", func(t *testing.T) {
		rule, err := NewRule(12)
		require.NoError(t, err)

		data, err := rule.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, rule.BinarySize())

		have := Rule{}
		require.NoError(t, have.UnmarshalBinary(data))
		require.True(t, rule.Equal(&have))
	})

	t.Run("Unmarshal/Mismatch", func(t *testing.T) {
		rule := Rule{Nodes: []float64{-0.5, 0.5}, Weights: []float64{1}}
		data, err := rule.MarshalBinary()
		require.NoError(t, err)
		require.Error(t, new(Rule).UnmarshalBinary(data))
	})

	t.Run("CopyNew", func(t *testing.T) {
		rule, err := NewRule(4)
		require.NoError(t, err)
		cpy := rule.CopyNew()
		cpy.Weights[0] = 0
		require.False(t, rule.Equal(cpy))
	})
}

// verifyAgainstReference compares a rule with the 128-bit reference table:
// nodes with an absolute tolerance, weights with a relative one.
func verifyAgainstReference(t *testing.T, rule Rule, nodeDelta, weightEpsilon float64) {
	nodes, weights, err := bignum.GaussLegendre(rule.Order(), 128)
	require.NoError(t, err)
	for i := range nodes {
		x, _ := nodes[i].Float64()
		w, _ := weights[i].Float64()
		require.InDelta(t, x, rule.Nodes[i], nodeDelta, "node %d", i)
		require.InEpsilon(t, w, rule.Weights[i], weightEpsilon, "weight %d", i)
	}
}

func TestInterval(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG(testKey)
	require.NoError(t, err)
	sampler := sampling.NewFloat64Sampler(prng)

	t.Run("Validate", func(t *testing.T) {
		require.NoError(t, Interval{A: 0, B: math.Pi}.Validate())
		require.NoError(t, Interval{A: 2, B: -1}.Validate())
		require.NoError(t, Interval{A: 1, B: 1}.Validate())
		require.ErrorIs(t, Interval{A: math.NaN(), B: 1}.Validate(), ErrInvalidInterval)
		require.ErrorIs(t, Interval{A: 0, B: math.Inf(1)}.Validate(), ErrInvalidInterval)
	})

	t.Run("Canonical", func(t *testing.T) {
		rule, err := NewRule(9)
		require.NoError(t, err)
		mapped := CanonicalInterval.Map(rule)
		require.Equal(t, rule.Nodes, mapped.Nodes)
		require.Equal(t, rule.Weights, mapped.Weights)
	})

	for _, n := range []int{1, 2, 7, 20} {

		rule, err := NewRule(n)
		require.NoError(t, err)

		t.Run(testString("WeightSum", n), func(t *testing.T) {
			for k := 0; k < 32; k++ {
				interval := Interval{A: sampler.Read(-10, 10), B: sampler.Read(-10, 10)}
				mapped := interval.Map(rule)
				require.Equal(t, n, mapped.Order())
				var sum float64
				for _, w := range mapped.Weights {
					sum += w
				}
				require.InEpsilon(t, interval.Length(), sum, 1e-9)
			}
		})

		t.Run(testString("Reverse", n), func(t *testing.T) {
			interval := Interval{A: -0.25, B: 3}
			fwd := interval.Map(rule)
			bwd := interval.Reverse().Map(rule)
			for i := 0; i < n; i++ {
				require.Equal(t, fwd.Nodes[i], bwd.Nodes[n-1-i])
				require.Equal(t, fwd.Weights[i], -bwd.Weights[n-1-i])
			}
		})

		t.Run(testString("Degenerate", n), func(t *testing.T) {
			mapped := Interval{A: 1.5, B: 1.5}.Map(rule)
			for i := range mapped.Nodes {
				require.Equal(t, 1.5, mapped.Nodes[i])
				require.Equal(t, 0.0, mapped.Weights[i])
			}
		})
	}

	t.Run("NoOverflow", func(t *testing.T) {
		rule, err := NewRule(2)
		require.NoError(t, err)

		// b-a overflows, the nodes do not.
		mapped := Interval{A: -math.MaxFloat64, B: math.MaxFloat64}.Map(rule)
		for i := range mapped.Nodes {
			require.False(t, math.IsInf(mapped.Nodes[i], 0))
		}
		require.Equal(t, -mapped.Nodes[0], mapped.Nodes[1])

		// h*w fits as long as the span does.
		quarter := math.MaxFloat64 / 4
		mapped = Interval{A: -quarter, B: quarter}.Map(rule)
		for i := range mapped.Weights {
			require.False(t, math.IsInf(mapped.Weights[i], 0))
			require.InEpsilon(t, quarter, mapped.Weights[i], 1e-15)
		}
	})
}

func TestCache(t *testing.T) {

	cache := NewCache()

	errs := make(chan error, 64)
	for k := 0; k < 64; k++ {
		go func(n int) {
			_, err := cache.Rule(n)
			errs <- err
		}(k%8 + 1)
	}

	for k := 0; k < 64; k++ {
		require.NoError(t, <-errs)
	}

	require.Equal(t, 8, cache.Len())

	for n := 1; n <= 8; n++ {
		cached, err := cache.Rule(n)
		require.NoError(t, err)
		want, err := NewRule(n)
		require.NoError(t, err)
		require.True(t, want.Equal(&cached))
	}

	_, err := cache.Rule(0)
	require.True(t, errors.Is(err, ErrInvalidOrder))
	require.Equal(t, 8, cache.Len())
}

func TestGonumAgreement(t *testing.T) {

	for _, n := range testOrders() {
		t.Run(testString("Legendre", n), func(t *testing.T) {

			rule, err := NewRule(n)
			require.NoError(t, err)

			x := make([]float64, n)
			w := make([]float64, n)
			quad.Legendre{}.FixedLocations(x, w, -1, 1)

			idx := make([]int, n)
			for i := range idx {
				idx[i] = i
			}
			sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })

			for i, j := range idx {
				require.InDelta(t, x[j], rule.Nodes[i], 1e-12)
				require.InEpsilon(t, w[j], rule.Weights[i], 1e-10)
			}
		})
	}

	t.Run("Fixed", func(t *testing.T) {
		want := quad.Fixed(func(x float64) float64 { return math.Sin(x * x) }, 0, math.Pi, 20, quad.Legendre{}, 1)
		have, err := Integrate(func(x float64) float64 { return math.Sin(x * x) }, 0, math.Pi, 20)
		require.NoError(t, err)
		require.InDelta(t, want, have, 1e-12)
	})
}

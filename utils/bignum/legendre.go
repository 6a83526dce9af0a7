package bignum

import (
	"fmt"
	"math/big"
)

// LegendreEval returns the Legendre polynomial P_n(x) and its derivative
// P'_n(x), computed with the three-term recurrence at the precision of x.
// The derivative is undefined at x = ±1.
func LegendreEval(n int, x *big.Float) (p, dp *big.Float) {

	prec := x.Prec()

	p0 := NewFloat(1, prec)
	p1 := new(big.Float).Set(x)

	if n == 0 {
		return p0, NewFloat(0, prec)
	}

	tmp := new(big.Float).SetPrec(prec)

	// (k+1) P_{k+1} = (2k+1) x P_k - k P_{k-1}
	for k := 1; k < n; k++ {
		p2 := new(big.Float).SetPrec(prec).Mul(x, p1)
		p2.Mul(p2, NewFloat(2*k+1, prec))
		tmp.Mul(p0, NewFloat(k, prec))
		p2.Sub(p2, tmp)
		p2.Quo(p2, NewFloat(k+1, prec))
		p0, p1 = p1, p2
	}

	// P'_n = n (x P_n - P_{n-1}) / (x^2 - 1)
	dp = new(big.Float).SetPrec(prec).Mul(x, p1)
	dp.Sub(dp, p0)
	dp.Mul(dp, NewFloat(n, prec))
	tmp.Mul(x, x)
	tmp.Sub(tmp, NewFloat(1, prec))
	dp.Quo(dp, tmp)

	return p1, dp
}

// GaussLegendre returns the nodes, in increasing order, and the weights of the
// n-point Gauss-Legendre rule on [-1, 1], computed with prec bits of precision.
// It is slow and only meant to produce reference tables.
func GaussLegendre(n int, prec uint) (nodes, weights []*big.Float, err error) {

	if n < 1 {
		return nil, nil, fmt.Errorf("bignum.GaussLegendre: invalid order n=%d", n)
	}

	nodes = make([]*big.Float, n)
	weights = make([]*big.Float, n)

	// Newton stops once the step is below 2^(8-prec).
	eps := new(big.Float).SetPrec(prec).SetMantExp(NewFloat(1, prec), 8-int(prec))

	one := NewFloat(1, prec)
	two := NewFloat(2, prec)
	pi := Pi(prec)

	for i := 0; i < (n+1)/2; i++ {

		x := NewFloat(0, prec)

		if !(n&1 == 1 && i == n/2) {

			// x = cos(pi (i + 3/4) / (n + 1/2)), refined by Newton.
			theta := NewFloat(4*i+3, prec)
			theta.Mul(theta, pi)
			theta.Quo(theta, NewFloat(4*n+2, prec))
			x = Cos(theta)

			for iter := 0; iter < 128; iter++ {
				p, dp := LegendreEval(n, x)
				dx := p.Quo(p, dp)
				x.Sub(x, dx)
				if dx.Abs(dx).Cmp(eps) < 0 {
					break
				}
			}
		}

		_, dp := LegendreEval(n, x)

		// w = 2 / ((1 - x^2) P'_n(x)^2)
		w := new(big.Float).SetPrec(prec).Mul(x, x)
		w.Sub(one, w)
		dp.Mul(dp, dp)
		w.Mul(w, dp)
		w.Quo(two, w)

		nodes[i] = new(big.Float).Neg(x)
		nodes[n-1-i] = x
		weights[i] = new(big.Float).Set(w)
		weights[n-1-i] = w
	}

	return
}

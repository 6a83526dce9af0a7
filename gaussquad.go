/*
Package gaussquad is a pure Go implementation of Gauss-Legendre quadrature.

It is organised in the following packages:

  - legendre: generation of the N-point Gauss-Legendre nodes and weights on [-1, 1],
    their mapping to an arbitrary interval and the evaluation of weighted sums.
  - convergence: sweeps over the number of points N, series of approximations and
    convergence reports.
  - plot: convergence charts rendered to PNG.
  - utils/bignum: arbitrary precision Gauss-Legendre rules used as reference tables.

The cmd/gaussquad command exposes sweeps and rules on the command line and
examples/convergence walks through the convergence of the integral of sin(x^2) over [0, pi].
*/
package gaussquad

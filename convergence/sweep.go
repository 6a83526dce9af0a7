package convergence

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gaussquad/gaussquad/legendre"
)

// Sweeper evaluates the approximations of an integral for every order of a sweep.
// Rules are generated once and cached across runs. A Sweeper is safe for concurrent use.
type Sweeper struct {
	params Parameters
	cache  *legendre.Cache
	eval   *legendre.Evaluator
}

// NewSweeper creates a new Sweeper from the target parameters.
func NewSweeper(params Parameters) *Sweeper {
	return &Sweeper{
		params: params,
		cache:  legendre.NewCache(),
		eval:   legendre.NewEvaluator(),
	}
}

// Parameters returns the parameters of the sweeper.
func (s *Sweeper) Parameters() Parameters {
	return s.params
}

// Run approximates the integral of f over the interval of the parameters for every
// order of the sweep and returns the series of approximations in increasing order.
// See [legendre.NewIntegrand] for the accepted types of f.
//
// With the [Abort] policy, the failure with the lowest order is returned along
// with an empty series. With the [Skip] policy, failed orders are kept in the
// series with their error and the sweep goes on.
//
// Up to Parameters.Workers orders are evaluated concurrently. The result does not
// depend on the number of workers.
func (s *Sweeper) Run(ctx context.Context, f interface{}) (Series, error) {

	integrand, err := legendre.NewIntegrand(f)
	if err != nil {
		return Series{}, fmt.Errorf("convergence.Sweeper.Run: %w", err)
	}

	interval := s.params.Interval()
	orders := s.params.Orders()
	points := make([]Point, len(orders))
	abort := s.params.Policy() == Abort

	if len(orders) == 0 {
		return Series{}, fmt.Errorf("convergence.Sweeper.Run: %w: no orders, parameters must be created with NewParametersFromLiteral", ErrInvalidRange)
	}

	logger := Logger().With("a", interval.A, "b", interval.B)
	logger.Info("sweep started", "start", orders[0], "end", orders[len(orders)-1], "points", len(orders), "workers", s.params.Workers(), "policy", s.params.Policy())

	// Orders are launched in increasing N and every launched order runs to completion,
	// so once a failure is seen, all lower orders have been evaluated.
	var failed atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.params.Workers()))

	for i := range orders {

		if (abort && failed.Load()) || gctx.Err() != nil {
			break
		}

		g.Go(func() error {

			if err := gctx.Err(); err != nil {
				return err
			}

			points[i] = s.approximate(interval, orders[i], integrand)

			if p := points[i]; !p.Succeeded() {
				failed.Store(true)
				if !abort {
					logger.Warn("order skipped", "n", p.N, "err", p.Err)
				}
			} else {
				logger.Debug("approximation", "n", p.N, "value", p.Value)
			}

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return Series{}, fmt.Errorf("convergence.Sweeper.Run: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return Series{}, fmt.Errorf("convergence.Sweeper.Run: %w", err)
	}

	if abort {
		for _, p := range points {
			if !p.Succeeded() {
				logger.Info("sweep aborted", "n", p.N, "err", p.Err)
				return Series{}, fmt.Errorf("convergence.Sweeper.Run: N=%d: %w", p.N, p.Err)
			}
		}
	}

	series := Series{Interval: interval, Points: points}

	if last, ok := series.Last(); ok {
		logger.Info("sweep done", "n", last.N, "value", last.Value, "failures", len(series.Failures()))
	}

	return series, nil
}

func (s *Sweeper) approximate(interval legendre.Interval, n int, f legendre.Integrand) Point {

	rule, err := s.cache.Rule(n)
	if err != nil {
		return Point{N: n, Value: math.NaN(), Err: err}
	}

	value, err := s.eval.Integrate(interval.Map(rule), f)
	if err != nil {
		return Point{N: n, Value: math.NaN(), Err: err}
	}

	return Point{N: n, Value: value}
}

// Sweep runs a single sweep of f with the given parameters.
func Sweep(ctx context.Context, params Parameters, f interface{}) (Series, error) {
	return NewSweeper(params).Run(ctx, f)
}

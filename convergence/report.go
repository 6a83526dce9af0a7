package convergence

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Report summarises the magnitude of the successive differences
// over the last orders of a [Series].
type Report struct {
	// Tail is the number of differences summarised.
	Tail int `json:"tail"`
	// Tolerance is the bound on the differences below which the series is deemed converged.
	Tolerance float64 `json:"tolerance"`
	// Last is the successful point of highest order.
	Last Point `json:"last"`

	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	Max    float64 `json:"max"`

	// Converged is true if every summarised difference is at most Tolerance.
	Converged bool `json:"converged"`
}

// NewReport summarises the absolute values of the last tail differences of the series.
// A non-positive tail summarises all of them. The series must hold at least two
// successful points.
func NewReport(series Series, tail int, tolerance float64) (r Report, err error) {

	diffs := series.Differences()
	if len(diffs) == 0 {
		return Report{}, fmt.Errorf("convergence.NewReport: need at least two successful points, have %d", len(series.Succeeded()))
	}

	if tail <= 0 || tail > len(diffs) {
		tail = len(diffs)
	}

	data := make(stats.Float64Data, tail)
	for i, d := range diffs[len(diffs)-tail:] {
		data[i] = math.Abs(d)
	}

	r.Tail = tail
	r.Tolerance = tolerance
	r.Last, _ = series.Last()

	if r.Mean, err = stats.Mean(data); err != nil {
		return Report{}, fmt.Errorf("convergence.NewReport: %w", err)
	}

	if r.Median, err = stats.Median(data); err != nil {
		return Report{}, fmt.Errorf("convergence.NewReport: %w", err)
	}

	if r.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Report{}, fmt.Errorf("convergence.NewReport: %w", err)
	}

	if r.Max, err = stats.Max(data); err != nil {
		return Report{}, fmt.Errorf("convergence.NewReport: %w", err)
	}

	r.Converged = r.Max <= tolerance

	return r, nil
}

func (r Report) String() string {
	return fmt.Sprintf("last %d differences: mean=%.3e median=%.3e stddev=%.3e max=%.3e converged=%t (tolerance=%.1e)",
		r.Tail, r.Mean, r.Median, r.StdDev, r.Max, r.Converged, r.Tolerance)
}

package montecarlo

import (
	"math"
	"sort"
)

// summarize computes the aggregated Result from raw per-iteration
// draws, preserving iteration order in Iterations (spec §5: "sort
// after any parallel collection step" — callers hand draws back here
// already placed at their iteration index).
func summarize(draws []float64, cancelled bool) Result {
	n := len(draws)
	res := Result{N: n, Cancelled: cancelled, Iterations: draws}
	if n == 0 {
		return res
	}

	var sum float64
	for _, v := range draws {
		sum += v
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range draws {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	res.Mean = mean
	res.StdDev = math.Sqrt(variance)
	res.Quantiles = quantiles(draws, DefaultQuantiles)
	return res
}

// quantiles computes each requested quantile via linear interpolation
// on a sorted copy of draws.
func quantiles(draws []float64, qs []float64) map[float64]float64 {
	sorted := make([]float64, len(draws))
	copy(sorted, draws)
	sort.Float64s(sorted)

	out := make(map[float64]float64, len(qs))
	n := len(sorted)
	for _, q := range qs {
		if n == 1 {
			out[q] = sorted[0]
			continue
		}
		pos := q * float64(n-1)
		lo := int(math.Floor(pos))
		hi := int(math.Ceil(pos))
		if lo == hi {
			out[q] = sorted[lo]
			continue
		}
		frac := pos - float64(lo)
		out[q] = sorted[lo]*(1-frac) + sorted[hi]*frac
	}
	return out
}

package montecarlo

import (
	"context"
	"fmt"
	"math/rand"
)

// SerialDriver runs iterations one after another on a single RNG
// stream — the spec's "reproducible single-threaded default keyed by
// an explicit random seed" (spec §4.6), grounded on the teacher's
// RunSerial: a simple loop over shots with a cancellation/error check
// each time through.
type SerialDriver struct{}

func (d *SerialDriver) Run(ctx context.Context, sampler Sampler, n int, seed uint64) (Result, error) {
	rng := rand.New(rand.NewSource(int64(seed)))
	draws := make([]float64, 0, n)

	for i := range n {
		if err := ctx.Err(); err != nil {
			return summarize(draws, true), fmt.Errorf("montecarlo: %w", ErrCancelled)
		}
		v, err := sampler.SampleOnce(uint64(i), rng)
		if err != nil {
			return summarize(draws, false), fmt.Errorf("montecarlo: iteration %d failed: %w", i+1, err)
		}
		draws = append(draws, v)
	}

	return summarize(draws, false), nil
}

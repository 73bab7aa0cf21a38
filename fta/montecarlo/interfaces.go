// Package montecarlo implements the Monte-Carlo driver (C6): repeated
// sample-epoch draws over a sealed fault tree's basic events, evaluated
// against the inclusion-exclusion terms fta/prob already knows how to
// build, aggregated into summary statistics.
package montecarlo

import (
	"context"
	"math/rand"
)

// Sampler draws one Monte-Carlo iteration's estimate of the top-event
// indicator, given a fresh sample epoch and a per-call RNG. One call
// corresponds to the teacher's OneShotRunner.RunOnce: a single
// self-contained unit of work a Driver can schedule serially or across
// a worker pool.
type Sampler interface {
	SampleOnce(epoch uint64, rng *rand.Rand) (float64, error)
}

// Driver runs n iterations of sampler and aggregates them into a
// Result, honoring cooperative cancellation via ctx (spec §5).
type Driver interface {
	Run(ctx context.Context, sampler Sampler, n int, seed uint64) (Result, error)
}

// DriverFactory creates a new Driver instance; registries hold these
// rather than Driver values so every Run gets fresh internal state.
type DriverFactory func() Driver

// Cloneable is implemented by samplers whose internal state is not safe
// to share across goroutines (TreeSampler's expression nodes memoize a
// sample per epoch in unsynchronized fields). Parallel drivers clone
// once per worker via samplerForWorker; drivers ignore samplers that
// don't implement it, since a stateless sampler is already safe to share.
type Cloneable interface {
	Clone() Sampler
}

// samplerForWorker returns a sampler safe for one worker goroutine to
// call SampleOnce on repeatedly: a fresh Clone when the sampler carries
// unsynchronized memoization state, or s itself when it's already
// stateless (and hence safe to share).
func samplerForWorker(s Sampler) Sampler {
	if c, ok := s.(Cloneable); ok {
		return c.Clone()
	}
	return s
}

// ErrCancelled is returned (wrapped) when a cooperative cancellation
// check fires mid-run (spec §5, spec §7's Cancelled error kind).
var ErrCancelled = errCancelled{}

type errCancelled struct{}

func (errCancelled) Error() string { return "montecarlo: run cancelled" }

// Result is C6's aggregated output: mean, standard deviation, and the
// default 5/50/95 quantiles of the per-iteration pos-minus-neg draws
// (spec §4.5's "Monte-Carlo variant" outputs).
type Result struct {
	N          int
	Mean       float64
	StdDev     float64
	Quantiles  map[float64]float64 // keys 0.05, 0.5, 0.95 by default
	Cancelled  bool
	Iterations []float64 // raw per-iteration draws, ordered by iteration index
}

// DefaultQuantiles is the spec's default selection (5th/50th/95th
// percentile).
var DefaultQuantiles = []float64{0.05, 0.5, 0.95}

// splitSeed deterministically derives a per-worker seed from the
// master seed and worker index (spec §5: "per-thread RNGs must be
// deterministically split from the master seed"). A simple
// multiplicative mix keeps worker streams decorrelated without
// pulling in a dedicated splittable-RNG dependency.
func splitSeed(master uint64, worker int) int64 {
	const mix = 0x9E3779B97F4A7C15
	v := master + uint64(worker+1)*mix
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	return int64(v)
}

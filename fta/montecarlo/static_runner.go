package montecarlo

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
)

// StaticDriver partitions the n iterations evenly across Workers
// goroutines up front (no channel hand-off), grounded on the teacher's
// RunParallelStatic. Each worker gets its own RNG stream, deterministically
// split from the master seed (spec §5), and writes its draws directly
// into its pre-assigned slice range so no merge step is needed — the
// slice is already in iteration order once every worker finishes. Each
// worker also gets its own clone of sampler (via samplerForWorker) when
// the sampler carries memoized per-epoch state, so two workers never
// touch the same expression node's cache fields concurrently.
type StaticDriver struct {
	Workers int
}

func (d *StaticDriver) Run(ctx context.Context, sampler Sampler, n int, seed uint64) (Result, error) {
	if n <= 0 {
		return summarize(nil, false), nil
	}
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	per := n / workers
	extra := n % workers // first <extra> workers get one extra iteration

	draws := make([]float64, n)
	var cancelled atomic.Bool
	var firstErr atomic.Value
	var wg sync.WaitGroup

	start := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < extra {
			cnt++
		}
		wg.Add(1)
		go func(workerIdx, from, count int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(splitSeed(seed, workerIdx)))
			worker := samplerForWorker(sampler)
			for i := 0; i < count; i++ {
				if ctx.Err() != nil {
					cancelled.Store(true)
					return
				}
				iter := from + i
				v, err := worker.SampleOnce(uint64(iter), rng)
				if err != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("montecarlo: iteration %d failed: %w", iter+1, err))
					return
				}
				draws[iter] = v
			}
		}(w, start, cnt)
		start += cnt
	}

	wg.Wait()

	if err, ok := firstErr.Load().(error); ok && err != nil {
		return summarize(draws, false), err
	}
	if cancelled.Load() {
		return summarize(draws, true), fmt.Errorf("montecarlo: %w", ErrCancelled)
	}
	return summarize(draws, false), nil
}

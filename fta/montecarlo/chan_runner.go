package montecarlo

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
)

// ChanDriver fans the n iteration indices out over a job channel to a
// fixed worker pool, grounded on the teacher's RunParallelChan. Unlike
// StaticDriver's up-front partition, workers here pull whatever job is
// next off the channel, so a slow iteration on one worker doesn't
// starve the others of work. Trade-off: because which worker handles
// which iteration depends on scheduling, repeat runs with the same
// seed are not guaranteed bit-identical (P1 holds only for SerialDriver
// and StaticDriver, whose iteration-to-worker assignment is fixed).
type ChanDriver struct {
	Workers int
}

func (d *ChanDriver) Run(ctx context.Context, sampler Sampler, n int, seed uint64) (Result, error) {
	if n <= 0 {
		return summarize(nil, false), nil
	}
	workers := d.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	draws := make([]float64, n)
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var cancelled atomic.Bool
	var firstErr atomic.Value
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(splitSeed(seed, workerIdx)))
			worker := samplerForWorker(sampler)
			for iter := range jobs {
				if ctx.Err() != nil {
					cancelled.Store(true)
					continue
				}
				v, err := worker.SampleOnce(uint64(iter), rng)
				if err != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("montecarlo: iteration %d failed: %w", iter+1, err))
					continue
				}
				draws[iter] = v
			}
		}(w)
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

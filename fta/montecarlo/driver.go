package montecarlo

import (
	"context"
	"fmt"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/mcs"
	"github.com/kegliz/fta/internal/logger"
)

// Options configures one C6 run (spec §6's n_simulations/seed, plus
// the execution-strategy choice among the registered drivers).
type Options struct {
	NSimulations int    // 0 disables MC (spec §6 default)
	Seed         uint64 // spec §6 default 0
	NSums        int    // inclusion-exclusion truncation passed through to the sampler
	Strategy     string // "serial" (default), "static", or "chan"
	Workers      int    // only consulted by "static"/"chan"
	Log          *logger.Logger
}

// Compute runs the C6 driver selected by opts.Strategy over the given
// sealed tree and cut sets, returning the aggregated Result. Returns a
// zero Result, nil error when NSimulations <= 0 (MC disabled).
func Compute(ctx context.Context, tree *event.FaultTree, idx mcs.Index, cutSets []mcs.CutSet, opts Options) (Result, error) {
	log := opts.Log
	if log == nil {
		log = logger.NewLogger(logger.LoggerOptions{})
	}

	if opts.NSimulations <= 0 {
		return Result{}, nil
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = "serial"
	}

	driver, err := CreateDriver(strategy)
	if err != nil {
		return Result{}, fmt.Errorf("montecarlo: %w", err)
	}
	if withWorkers, ok := driver.(interface{ setWorkers(int) }); ok {
		withWorkers.setWorkers(opts.Workers)
	}

	sampler := NewTreeSampler(tree, idx, cutSets, opts.NSums)

	log.Info().
		Str("strategy", strategy).
		Int("n_simulations", opts.NSimulations).
		Uint64("seed", opts.Seed).
		Msg("montecarlo: starting run")

	res, err := driver.Run(ctx, sampler, opts.NSimulations, opts.Seed)
	if err != nil {
		log.Warn().Err(err).Msg("montecarlo: run did not complete cleanly")
		return res, err
	}

	log.Info().Float64("mean", res.Mean).Float64("stddev", res.StdDev).Msg("montecarlo: run finished")
	return res, nil
}

func (d *StaticDriver) setWorkers(w int) { d.Workers = w }
func (d *ChanDriver) setWorkers(w int)   { d.Workers = w }

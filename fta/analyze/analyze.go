// Package analyze wires the C4/C5/C6 pipeline together into the one
// call an outer collaborator (the REST layer in internal/app, or
// cmd/cli) actually wants: hand it a sealed tree and a Config, get back
// a complete Result. No single teacher file plays this role — the
// closest analog is qservice.Service, which is itself a thin glue layer
// over lower packages wired to one entry point per request; this
// package generalizes that "one call, fully wired" shape to fault-tree
// analysis instead of circuit execution/rendering.
package analyze

import (
	"context"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/mcs"
	"github.com/kegliz/fta/fta/montecarlo"
	"github.com/kegliz/fta/fta/prob"
	"github.com/kegliz/fta/internal/logger"
)

// Config collects spec §6's enumerated configuration knobs in one
// place, so a caller building a request (CLI flags, a REST payload)
// fills in one struct instead of three per-package Options.
type Config struct {
	LimitOrder        int     // default 20
	CutOff            float64 // default 0
	NSums             int     // default 1_000_000
	RareEvent         bool    // default false
	NSimulations      int     // default 0 (MC disabled)
	Seed              uint64  // default 0
	ComputeImportance bool    // default true
	Strategy          string  // montecarlo driver name; default "serial"
	Workers           int
}

// DefaultConfig returns spec §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		LimitOrder:        20,
		NSums:             1_000_000,
		ComputeImportance: true,
	}
}

// Result is the complete outbound payload (spec §6 "Outbound"): the MCS
// list with probabilities, the top-event probability, importance, any
// warnings, and (when NSimulations > 0) the Monte-Carlo sample statistics.
type Result struct {
	TreeName     string
	CutSets      []mcs.CutSet
	CutSetIDs    [][]string // CutSetIDs[i] names CutSets[i]'s basic events by identifier
	CutProbs     []float64
	Top          float64
	Importance   []prob.Importance
	Warnings     []string
	DroppedCount int
	MonteCarlo   *montecarlo.Result
}

// Run executes C4 (MCS generation), C5 (the probability kernel) and,
// when cfg.NSimulations > 0, C6 (the Monte-Carlo driver) against an
// already-sealed tree. rare_event + n_simulations both set is the
// spec §9 open question resolved as "rare-event disabled during MC,
// with a warning" — handled here since this is the one place both
// knobs are in scope together.
func Run(ctx context.Context, tree *event.FaultTree, cfg Config, log *logger.Logger) Result {
	if log == nil {
		log = logger.NewLogger(logger.LoggerOptions{})
	}

	idx := mcs.BuildIndex(tree)
	cutSets := mcs.Generate(tree, idx, cfg.LimitOrder)

	rareEvent := cfg.RareEvent
	var mcWarning string
	if cfg.NSimulations > 0 && cfg.RareEvent {
		rareEvent = false
		mcWarning = "rare-event approximation disabled: n_simulations > 0 takes precedence"
	}

	probResult := prob.Compute(tree, idx, cutSets, prob.Options{
		CutOff:            cfg.CutOff,
		NSums:             cfg.NSums,
		RareEvent:         rareEvent,
		ComputeImportance: cfg.ComputeImportance,
		Log:               log,
	})

	warnings := append([]string(nil), probResult.Warnings...)
	if mcWarning != "" {
		warnings = append(warnings, mcWarning)
	}

	result := Result{
		TreeName:     tree.Name,
		CutSets:      probResult.CutSets,
		CutSetIDs:    cutSetIDs(probResult.CutSets, idx),
		CutProbs:     probResult.CutProbs,
		Top:          probResult.Top,
		Importance:   probResult.Importance,
		Warnings:     warnings,
		DroppedCount: probResult.DroppedCount,
	}

	if cfg.NSimulations > 0 {
		mcRes, err := montecarlo.Compute(ctx, tree, idx, probResult.CutSets, montecarlo.Options{
			NSimulations: cfg.NSimulations,
			Seed:         cfg.Seed,
			NSums:        cfg.NSums,
			Strategy:     cfg.Strategy,
			Workers:      cfg.Workers,
			Log:          log,
		})
		if err != nil {
			result.Warnings = append(result.Warnings, "montecarlo: "+err.Error())
		}
		result.MonteCarlo = &mcRes
	}

	return result
}

// cutSetIDs renders each CutSet's dense indices back to their original
// basic-event identifiers, for reporting surfaces that shouldn't need
// to know about the internal dense-index representation.
func cutSetIDs(cutSets []mcs.CutSet, idx mcs.Index) [][]string {
	out := make([][]string, len(cutSets))
	for i, c := range cutSets {
		ids := make([]string, len(c))
		for j, v := range c {
			ids[j] = idx.ID(v)
		}
		out[i] = ids
	}
	return out
}

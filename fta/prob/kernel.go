// Package prob implements the probability kernel (C5): exact top-event
// probability via inclusion-exclusion, a rare-event first-order
// approximation, and Fussell-Vesely importance, all driven off a
// minimal-cut-set list and the per-basic-event probabilities the tree
// already carries.
//
// The Options/Compute split mirrors the teacher's simulator package
// shape: a small config struct picked apart by a single dispatching
// entry point, with the heavy lifting logged through internal/logger
// rather than printed directly.
package prob

import (
	"sort"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/mcs"
	"github.com/kegliz/fta/internal/logger"
)

// Options configures one C5 run (spec §6's enumerated configuration,
// restricted to the fields the probability kernel itself consumes;
// limit_order belongs to fta/mcs and n_simulations/seed to
// fta/montecarlo).
type Options struct {
	CutOff            float64 // discard cut sets below this probability
	NSums             int     // inclusion-exclusion truncation order
	RareEvent         bool    // force first-order-only approximation
	ComputeImportance bool
	Log               *logger.Logger
}

// Importance is one basic event's Fussell-Vesely contribution.
type Importance struct {
	ID    string
	Value float64
}

// Result is C5's structured output (spec §6 "Outbound").
type Result struct {
	CutSets      []mcs.CutSet
	CutProbs     []float64 // CutProbs[i] is the probability of CutSets[i]
	Top          float64
	Importance   []Importance // sorted descending by Value
	Warnings     []string
	DroppedCount int // cut sets removed by CutOff (P6)
}

// Compute runs the kernel over cutSets (already minimized by fta/mcs)
// against the per-basic-event probabilities read from tree via idx.
func Compute(tree *event.FaultTree, idx mcs.Index, cutSets []mcs.CutSet, opts Options) Result {
	log := opts.Log
	if log == nil {
		log = logger.NewLogger(logger.LoggerOptions{})
	}

	p := make([]float64, idx.Len()+1) // 1-based, p[0] unused
	for i := 1; i <= idx.Len(); i++ {
		term, _ := tree.Lookup(idx.ID(i))
		p[i] = event.Probability(term)
	}

	kept, dropped, keptProbs := applyCutOff(cutSets, p, opts.CutOff)
	log.Debug().Int("kept", len(kept)).Int("dropped", dropped).Msg("prob: cut-off applied")

	var top float64
	var warnings []string
	if opts.RareEvent || opts.NSums <= 1 {
		top, warnings = rareEventSum(keptProbs)
	} else {
		top = exactInclusionExclusion(kept, p, opts.NSums)
	}

	result := Result{
		CutSets:      kept,
		CutProbs:     keptProbs,
		Top:          top,
		Warnings:     warnings,
		DroppedCount: dropped,
	}

	if opts.ComputeImportance {
		result.Importance = fussellVesely(kept, keptProbs, idx, top)
	}

	log.Info().Float64("top", top).Int("mcs", len(kept)).Msg("prob: computed top-event probability")
	return result
}

func applyCutOff(cutSets []mcs.CutSet, p []float64, cutOff float64) (kept []mcs.CutSet, dropped int, keptProbs []float64) {
	for _, c := range cutSets {
		pc := cutSetProbability(c, p)
		if pc < cutOff {
			dropped++
			continue
		}
		kept = append(kept, c)
		keptProbs = append(keptProbs, pc)
	}
	return kept, dropped, keptProbs
}

func cutSetProbability(c mcs.CutSet, p []float64) float64 {
	v := 1.0
	for _, i := range c {
		v *= p[i]
	}
	return v
}

// rareEventSum is the spec's "first-order sum" Σ P(c), with the
// required warning when loosening the bound (any P(c) > 0.1).
func rareEventSum(cutProbs []float64) (float64, []string) {
	var sum float64
	var warnings []string
	for _, pc := range cutProbs {
		sum += pc
		if pc > 0.1 {
			warnings = append(warnings, "rare-event bound loosened: a cut set probability exceeds 0.1")
		}
	}
	return sum, warnings
}

// fussellVesely computes each basic event's Σ_{c ∋ i} P(c) / P(top),
// sorted descending.
func fussellVesely(cutSets []mcs.CutSet, cutProbs []float64, idx mcs.Index, top float64) []Importance {
	contrib := make([]float64, idx.Len()+1)
	for ci, c := range cutSets {
		for _, i := range c {
			contrib[i] += cutProbs[ci]
		}
	}

	out := make([]Importance, 0, idx.Len())
	for i := 1; i <= idx.Len(); i++ {
		v := 0.0
		if top > 0 {
			v = contrib[i] / top
		}
		out = append(out, Importance{ID: idx.ID(i), Value: v})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Value != out[b].Value {
			return out[a].Value > out[b].Value
		}
		return out[a].ID < out[b].ID
	})
	return out
}

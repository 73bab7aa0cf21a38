package montecarlo

import (
	"math/rand"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/expr"
	"github.com/kegliz/fta/fta/mcs"
	"github.com/kegliz/fta/fta/prob"
)

// TreeSampler is the concrete Sampler for a sealed fault tree: each
// draw advances the sample epoch, draws a fresh Bernoulli indicator
// per basic event from its expression's sampled probability, then
// evaluates the pos/neg inclusion-exclusion polynomials over those
// indicators (spec §4.5's Monte-Carlo variant).
type TreeSampler struct {
	exprs    []*expr.Node // exprs[i-1] is the expression for basic event index i, nil if unset
	houses   []*bool      // houses[i-1] is the fixed state for a house event at index i, nil if not a house event
	posTerms []prob.Term
	negTerms []prob.Term
}

// NewTreeSampler builds a sampler from a sealed tree, its dense basic-
// event index, and the already-generated cut sets, truncating the
// inclusion-exclusion expansion at nSums terms exactly as fta/prob does.
func NewTreeSampler(tree *event.FaultTree, idx mcs.Index, cutSets []mcs.CutSet, nSums int) *TreeSampler {
	s := &TreeSampler{
		exprs:  make([]*expr.Node, idx.Len()),
		houses: make([]*bool, idx.Len()),
	}
	for i := 1; i <= idx.Len(); i++ {
		term, _ := tree.Lookup(idx.ID(i))
		switch t := term.(type) {
		case *event.BasicEvent:
			if n, ok := t.Expr.(*expr.Node); ok {
				s.exprs[i-1] = n
			}
		case *event.HouseEvent:
			state := t.State
			s.houses[i-1] = &state
		}
	}

	for _, term := range prob.Terms(cutSets, nSums) {
		if term.Sign > 0 {
			s.posTerms = append(s.posTerms, term)
		} else {
			s.negTerms = append(s.negTerms, term)
		}
	}
	return s
}

// Clone implements Cloneable: it deep-copies every expression node s
// holds, sharing a single memo map across the copy so basic events that
// reference the same expression node keep referencing the same (cloned)
// node, and hence still draw the same sampled value within one epoch.
// posTerms/negTerms/houses are read-only after construction and are
// shared as-is.
func (s *TreeSampler) Clone() Sampler {
	memo := make(map[*expr.Node]*expr.Node, len(s.exprs))
	clone := &TreeSampler{
		exprs:    make([]*expr.Node, len(s.exprs)),
		houses:   s.houses,
		posTerms: s.posTerms,
		negTerms: s.negTerms,
	}
	for i, n := range s.exprs {
		clone.exprs[i] = n.Clone(memo)
	}
	return clone
}

// SampleOnce implements Sampler.
func (s *TreeSampler) SampleOnce(epoch uint64, rng *rand.Rand) (float64, error) {
	indicators := make([]bool, len(s.exprs))
	for i, node := range s.exprs {
		if node == nil {
			continue
		}
		p := node.Sample(expr.Epoch(epoch), rng)
		indicators[i] = rng.Float64() < p
	}
	for i, state := range s.houses {
		if state != nil {
			indicators[i] = *state
		}
	}

	pos := evalTerms(s.posTerms, indicators)
	neg := evalTerms(s.negTerms, indicators)
	return pos - neg, nil
}

func evalTerms(terms []prob.Term, indicators []bool) float64 {
	var sum float64
	for _, t := range terms {
		occurred := true
		for _, i := range t.Indices {
			if !indicators[i-1] {
				occurred = false
				break
			}
		}
		if occurred {
			sum++
		}
	}
	return sum
}

package mcs

import (
	"sort"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/gatekind"
)

// CutSet is a sorted set of positive basic-event indices.
type CutSet []int

// pendingGate is one gate still awaiting expansion within a superset,
// tagged with whether NOT has flipped its polarity so far.
type pendingGate struct {
	gate    *event.Gate
	negated bool
}

// superset is the intermediate worklist entry from spec §4.4: a pair of
// positive/negative basic-event index sets plus the gates still to
// expand. Once pending is empty the superset is a candidate cut set.
type superset struct {
	positives map[int]bool
	negatives map[int]bool
	pending   []pendingGate
}

func newSuperset() superset {
	return superset{positives: make(map[int]bool), negatives: make(map[int]bool)}
}

func (s superset) clone() superset {
	c := superset{
		positives: make(map[int]bool, len(s.positives)),
		negatives: make(map[int]bool, len(s.negatives)),
		pending:   append([]pendingGate(nil), s.pending...),
	}
	for k := range s.positives {
		c.positives[k] = true
	}
	for k := range s.negatives {
		c.negatives[k] = true
	}
	return c
}

// applyLiteral adds a (possibly negated) basic-event literal to s,
// rejecting the branch if it conflicts with an opposite-polarity literal
// already present (spec §4.4: "reject candidates in which any basic
// event appears with both polarities").
func applyLiteral(s *superset, idx int, negated bool) bool {
	if negated {
		if s.positives[idx] {
			return false
		}
		s.negatives[idx] = true
	} else {
		if s.negatives[idx] {
			return false
		}
		s.positives[idx] = true
	}
	return true
}

// applyTerm folds one resolved Term (basic event, house event, or
// nested gate) into s under the given polarity. Returns the (possibly
// unmodified) superset and false if the branch must be discarded (a
// polarity conflict, or a house event resolving to "false" under an AND
// context).
func applyTerm(s superset, term event.Term, negated bool, idx Index) (superset, bool) {
	switch t := term.(type) {
	case *event.Gate:
		s.pending = append(s.pending, pendingGate{gate: t, negated: negated})
		return s, true
	case *event.BasicEvent:
		i, ok := idx.Of(t.ID())
		if !ok {
			return s, false
		}
		if !applyLiteral(&s, i, negated) {
			return s, false
		}
		return s, true
	case *event.HouseEvent:
		state := t.State
		if negated {
			state = !state
		}
		// true -> remove the term (no constraint); false -> the
		// conjunction this term participates in can never hold.
		return s, state
	default:
		return s, false
	}
}

// expandAsAND folds every child of a group into s as if the group were
// an AND (or, under an outer negation turning the group into the
// complement of an OR, as the De Morgan-dual branch) — used by AND/NULL
// expansion and by OR expansion under negation (e.g. a plain NOR). OR, XOR and K-of-N branches
// fold their children with applyTerm directly.
func expandAsAND(base superset, children []event.Term, negated bool, idx Index) (superset, bool) {
	s := base
	for _, c := range children {
		var ok bool
		s, ok = applyTerm(s, c, negated, idx)
		if !ok {
			return s, false
		}
	}
	return s, true
}

// expandPending pops and expands gate p from base, returning the
// resulting branch supersets (zero, one, or many depending on the
// gate's kind). base's pending must already have p removed by the caller.
func expandPending(base superset, p pendingGate, idx Index) []superset {
	kind := p.gate.Kind
	negated := p.negated

	// Structural aliases (spec §3: "others reduce to these"), read off
	// gatekind's own reduction table rather than re-declared here.
	if kind.Negated() {
		negated = !negated
	}
	if reduced, ok := kind.Reduces(); ok {
		kind = reduced
	}

	children := p.gate.SortedChildren()

	switch kind {
	case gatekind.AND:
		if negated {
			return expandOR(base, children, true, idx)
		}
		s, ok := expandAsAND(base.clone(), children, false, idx)
		if !ok {
			return nil
		}
		return []superset{s}

	case gatekind.OR:
		if negated {
			s, ok := expandAsAND(base.clone(), children, true, idx)
			if !ok {
				return nil
			}
			return []superset{s}
		}
		return expandOR(base, children, false, idx)

	case gatekind.NOT:
		child := children[0]
		s, ok := applyTerm(base.clone(), child, !negated, idx)
		if !ok {
			return nil
		}
		return []superset{s}

	case gatekind.XOR:
		a, b := children[0], children[1]
		var combos [][2]bool
		if negated {
			combos = [][2]bool{{false, false}, {true, true}}
		} else {
			combos = [][2]bool{{false, true}, {true, false}}
		}
		var out []superset
		for _, combo := range combos {
			s := base.clone()
			s1, ok := applyTerm(s, a, combo[0], idx)
			if !ok {
				continue
			}
			s2, ok := applyTerm(s1, b, combo[1], idx)
			if !ok {
				continue
			}
			out = append(out, s2)
		}
		return out

	case gatekind.KOFN:
		n := len(children)
		k := p.gate.K
		threshold := k
		childNegated := negated
		if negated {
			threshold = n - k + 1
		}
		combos := combinations(n, threshold)
		var out []superset
		for _, combo := range combos {
			s := base.clone()
			ok := true
			for _, ci := range combo {
				s, ok = applyTerm(s, children[ci], childNegated, idx)
				if !ok {
					break
				}
			}
			if ok {
				out = append(out, s)
			}
		}
		return out

	default:
		return nil
	}
}

// expandOR produces one branch per child, each an AND-fold of that
// single child (spec §4.4: "OR: produce one superset per child").
func expandOR(base superset, children []event.Term, negated bool, idx Index) []superset {
	var out []superset
	for _, c := range children {
		s, ok := applyTerm(base.clone(), c, negated, idx)
		if ok {
			out = append(out, s)
		}
	}
	return out
}

// Generate runs the C4 top-down expansion over tree (which must already
// be sealed) and returns the minimized cut sets, ordered by size then
// lexicographically by content (spec §4.4's determinism requirement).
// limitOrder bounds positives' size during expansion (pruning is safe
// because AND only grows the set); limitOrder <= 0 disables the bound.
func Generate(tree *event.FaultTree, idx Index, limitOrder int) []CutSet {
	if tree.Top == nil {
		return nil
	}

	start := newSuperset()
	start.pending = []pendingGate{{gate: tree.Top, negated: false}}
	worklist := []superset{start}

	var candidates []superset
	for len(worklist) > 0 {
		n := len(worklist)
		cur := worklist[n-1]
		worklist = worklist[:n-1]

		if len(cur.pending) == 0 {
			candidates = append(candidates, cur)
			continue
		}

		p := cur.pending[0]
		rest := cur.clone()
		rest.pending = append([]pendingGate(nil), cur.pending[1:]...)

		for _, branch := range expandPending(rest, p, idx) {
			if limitOrder > 0 && len(branch.positives) > limitOrder {
				continue
			}
			worklist = append(worklist, branch)
		}
	}

	sets := make([]CutSet, 0, len(candidates))
	for _, c := range candidates {
		cs := make(CutSet, 0, len(c.positives))
		for i := range c.positives {
			cs = append(cs, i)
		}
		sort.Ints(cs)
		sets = append(sets, cs)
	}

	return Minimize(sets)
}

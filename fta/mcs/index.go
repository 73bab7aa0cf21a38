// Package mcs implements the minimal-cut-set generator (C4): a top-down
// superset worklist expansion over a validated fault tree, followed by
// strict-superset minimization.
package mcs

import "github.com/kegliz/fta/fta/event"

// Index assigns every basic event a dense integer index 1..B, the
// representation spec §4.4 requires ("assign every basic event a dense
// integer index 1..B").
type Index struct {
	idToIdx map[string]int
	idxToID []string // idxToID[i-1] corresponds to index i
}

// BuildIndex assigns indices in sorted (lexicographic) identifier order,
// so the mapping — and therefore every downstream report — is
// deterministic across runs (P1).
func BuildIndex(tree *event.FaultTree) Index {
	ids := tree.SortedBasicEventIDs()
	ix := Index{idToIdx: make(map[string]int, len(ids)), idxToID: make([]string, len(ids))}
	for i, id := range ids {
		ix.idToIdx[id] = i + 1
		ix.idxToID[i] = id
	}
	return ix
}

// Of returns the dense index for a normalized basic-event identifier.
func (ix Index) Of(id string) (int, bool) {
	v, ok := ix.idToIdx[id]
	return v, ok
}

// ID returns the normalized basic-event identifier for a dense index.
func (ix Index) ID(i int) string { return ix.idxToID[i-1] }

// Len returns the number of basic events indexed (B).
func (ix Index) Len() int { return len(ix.idxToID) }

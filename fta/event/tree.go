package event

import (
	"sort"

	"github.com/kegliz/fta/fta/gatekind"
)

// Gate is an internal fault-tree node: a logical combinator over an
// ordered set of children, each either another Gate or a primary event.
type Gate struct {
	Event
	Kind     gatekind.Kind
	K        int // k for KOFN/ATLEAST; unused otherwise
	children map[string]Term
	order    []string // insertion order of normalized child ids
}

func (g *Gate) IsGate() bool { return true }

// NewGate constructs an empty gate of the given kind. K is only
// meaningful for KOFN/ATLEAST and is validated at Seal time (C3), not
// at construction, so a builder can wire up children before params are
// finalized.
func NewGate(id string, kind gatekind.Kind, k int) *Gate {
	return &Gate{
		Event:    newEvent(id),
		Kind:     kind,
		K:        k,
		children: make(map[string]Term),
	}
}

// AddChild attaches child to g. Rejects duplicates within the same gate
// (spec §4.2: "add_child rejects duplicates within the same gate").
func (g *Gate) AddChild(child Term) error {
	if _, exists := g.children[child.ID()]; exists {
		return ErrDuplicateChild
	}
	g.children[child.ID()] = child
	g.order = append(g.order, child.ID())
	child.addParent(g)
	return nil
}

// Children returns the gate's children in insertion order. Use
// SortedChildren for the deterministic sort-by-key order validation and
// MCS expansion require.
func (g *Gate) Children() []Term {
	out := make([]Term, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.children[id])
	}
	return out
}

// SortedChildren returns the gate's children sorted by normalized
// identifier, the deterministic traversal order spec §4.3/§4.4 require
// ("traversal uses sorted child keys so diagnostics are deterministic").
func (g *Gate) SortedChildren() []Term {
	ids := make([]string, 0, len(g.children))
	for id := range g.children {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Term, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.children[id])
	}
	return out
}

// NumChildren returns the child count, used by arity checks.
func (g *Gate) NumChildren() int { return len(g.children) }

// FaultTree is the sealed (post-validation, read-only) or in-progress
// (pre-validation, mutable) model of one fault tree: a name, the top
// gate, and indexes discovered during construction/validation.
type FaultTree struct {
	Name string
	Top  *Gate

	gates    map[string]*Gate // inter_events: every registered or discovered gate, keyed by normalized id
	implicit map[string]bool  // implicit_gates: subset of gates not pre-registered
	basics   map[string]*BasicEvent
	houses   map[string]*HouseEvent

	sealed bool
}

// NewFaultTree constructs an empty, mutable fault tree. The top gate is
// supplied once construction is otherwise complete, via SetTop.
func NewFaultTree(name string) *FaultTree {
	return &FaultTree{
		Name:     name,
		gates:    make(map[string]*Gate),
		implicit: make(map[string]bool),
		basics:   make(map[string]*BasicEvent),
		houses:   make(map[string]*HouseEvent),
	}
}

// RegisterGate adds a gate to the tree's pre-declared index. Gates
// discovered later by DFS without having been registered here become
// "implicit gates" (spec §4.3 step 2).
func (t *FaultTree) RegisterGate(g *Gate) error {
	if t.sealed {
		return ErrSealed
	}
	if _, exists := t.gates[g.ID()]; exists {
		return ErrDuplicateID
	}
	t.gates[g.ID()] = g
	return nil
}

// RegisterBasicEvent adds a basic event to the tree's primary-event index.
func (t *FaultTree) RegisterBasicEvent(b *BasicEvent) error {
	if t.sealed {
		return ErrSealed
	}
	if _, exists := t.basics[b.ID()]; exists {
		return ErrDuplicateID
	}
	t.basics[b.ID()] = b
	return nil
}

// RegisterHouseEvent adds a house event to the tree's primary-event index.
func (t *FaultTree) RegisterHouseEvent(h *HouseEvent) error {
	if t.sealed {
		return ErrSealed
	}
	if _, exists := t.houses[h.ID()]; exists {
		return ErrDuplicateID
	}
	t.houses[h.ID()] = h
	return nil
}

// SetTop assigns the top gate. The top gate must already be registered.
func (t *FaultTree) SetTop(g *Gate) error {
	if t.sealed {
		return ErrSealed
	}
	t.Top = g
	return nil
}

// Lookup resolves a normalized identifier to the Term it names, searching
// gates, then basic events, then house events. Used by the builder to
// resolve child_ids into Term references.
func (t *FaultTree) Lookup(id string) (Term, bool) {
	id = normalize(id)
	if g, ok := t.gates[id]; ok {
		return g, true
	}
	if b, ok := t.basics[id]; ok {
		return b, true
	}
	if h, ok := t.houses[id]; ok {
		return h, true
	}
	return nil, false
}

// Gates returns inter_events, keyed by normalized id: every gate passed to
// RegisterGate (whether or not it is reachable from Top) plus every gate
// added by RegisterDiscoveredGate.
func (t *FaultTree) Gates() map[string]*Gate { return t.gates }

// ImplicitGates returns the normalized ids of gates discovered by DFS
// that were not pre-registered via RegisterGate.
func (t *FaultTree) ImplicitGates() map[string]bool { return t.implicit }

// BasicEvents returns the tree's basic-event index.
func (t *FaultTree) BasicEvents() map[string]*BasicEvent { return t.basics }

// HouseEvents returns the tree's house-event index.
func (t *FaultTree) HouseEvents() map[string]*HouseEvent { return t.houses }

// markImplicit records id as a gate discovered but not pre-declared.
// Called only from RegisterDiscoveredGate.
func (t *FaultTree) markImplicit(id string) { t.implicit[id] = true }

// RegisterDiscoveredGate adds g to inter_events and implicit_gates in one
// step, for a gate found by DFS that was never pre-declared.
func (t *FaultTree) RegisterDiscoveredGate(g *Gate) {
	t.gates[g.ID()] = g
	t.markImplicit(g.ID())
}

// Seal freezes the tree against further mutation. Validation (C3) must
// have already run; Seal itself performs no checks, it only flips the
// read-only flag, matching the "built by the parser, sealed by
// validation, read-only during analysis" lifecycle from spec §3.
func (t *FaultTree) Seal() { t.sealed = true }

// Sealed reports whether the tree has been sealed.
func (t *FaultTree) Sealed() bool { return t.sealed }

// SortedBasicEventIDs returns every basic-event identifier in
// deterministic (lexicographic) order, the order C4 assigns dense
// integer indices 1..B against.
func (t *FaultTree) SortedBasicEventIDs() []string {
	ids := make([]string, 0, len(t.basics))
	for id := range t.basics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

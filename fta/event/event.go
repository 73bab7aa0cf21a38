// Package event implements the fault-tree data model (C2): events, gates
// and the fault tree that owns them as a shared-node DAG.
//
// Events are shared nodes (a gate does not own its children, the tree
// does); parent back-references are weak, used only for traversal and
// the I1 post-validation invariant, never for lifetime. This mirrors the
// teacher's qc/dag.Node adjacency-by-ID approach, generalized from a
// qubit-indexed DAG to an identifier-indexed one.
package event

import "strings"

// Term is anything a gate can hold as a child: another Gate, or a
// primary event (BasicEvent/HouseEvent). The kind set is closed, so a
// small sum-type-flavored interface (ID/Kind accessors) takes the place
// of a deep class hierarchy.
type Term interface {
	ID() string         // normalized (lowercased/canonical) identifier
	OriginalID() string // user-supplied spelling, retained for diagnostics
	IsGate() bool
	addParent(g *Gate)
	parentIDs() []string
}

// Event is the common attribute set every Term embeds: identifiers and
// weak parent back-references.
type Event struct {
	id      string
	orig    string
	parents map[string]*Gate // keyed by parent gate's normalized id
}

func newEvent(id string) Event {
	return Event{id: normalize(id), orig: id, parents: make(map[string]*Gate)}
}

// ID returns the normalized identifier.
func (e *Event) ID() string { return e.id }

// OriginalID returns the identifier spelling as supplied by the caller.
func (e *Event) OriginalID() string { return e.orig }

func (e *Event) addParent(g *Gate) { e.parents[g.id] = g }

func (e *Event) parentIDs() []string {
	ids := make([]string, 0, len(e.parents))
	for id := range e.parents {
		ids = append(ids, id)
	}
	return ids
}

// Parents returns the gates that currently reference this event as a
// child. Non-empty for every non-top event once the tree is sealed (I1).
func (e *Event) Parents() []*Gate {
	out := make([]*Gate, 0, len(e.parents))
	for _, g := range e.parents {
		out = append(out, g)
	}
	return out
}

// BasicEvent is a primary event carrying a probability expression.
type BasicEvent struct {
	Event
	Expr ExprNode // nil until add_expression/add_basic_event wires one in
}

// ExprNode is the subset of *expr.Node that event needs; declared here
// (rather than importing fta/expr directly into the Term's hot path)
// keeps event's compile-time dependency surface to the one method
// actually used pre-analysis. fta/prob reads Mean through Probability;
// fta/montecarlo and fta/validate type-assert to the concrete *expr.Node
// when sampling or validating.
type ExprNode interface {
	Mean() float64
}

func (b *BasicEvent) IsGate() bool { return false }

// NewBasicEvent constructs a basic event with no expression attached
// yet; Expr is filled in by the builder's add_basic_event step.
func NewBasicEvent(id string) *BasicEvent {
	return &BasicEvent{Event: newEvent(id)}
}

// HouseEvent is a primary event with a fixed Boolean state.
type HouseEvent struct {
	Event
	State bool
}

func (h *HouseEvent) IsGate() bool { return false }

// NewHouseEvent constructs a house event with the given fixed state.
func NewHouseEvent(id string, state bool) *HouseEvent {
	return &HouseEvent{Event: newEvent(id), State: state}
}

// Probability returns the term's probability for use by C5: a basic
// event's expression mean, or 1/0 for a house event.
func Probability(t Term) float64 {
	switch v := t.(type) {
	case *BasicEvent:
		if v.Expr == nil {
			return 0
		}
		return v.Expr.Mean()
	case *HouseEvent:
		if v.State {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func normalize(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

// DanglingRef is a placeholder Term the builder substitutes for a
// child_id that does not resolve to any registered gate or primary
// event at the time a gate is built. fta/validate's completeness check
// (spec §4.3 step 3) looks for these and reports them by name; a
// correctly built and sealed tree never contains one.
type DanglingRef struct {
	Event
}

func (d *DanglingRef) IsGate() bool { return false }

// NewDanglingRef constructs a dangling placeholder for the given
// (unresolved) identifier.
func NewDanglingRef(id string) *DanglingRef {
	return &DanglingRef{Event: newEvent(id)}
}

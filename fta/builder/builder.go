// Package builder implements the inbound construction API (spec §6):
// new_fault_tree/add_gate/add_basic_event/add_house_event/add_expression
// /seal. This is the entry point an external parser (XML, a DSL, a REST
// payload) uses to populate a fta/event.FaultTree before analysis.
package builder

import (
	"fmt"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/expr"
	"github.com/kegliz/fta/fta/gatekind"
	"github.com/kegliz/fta/fta/validate"
)

// Builder is a fluent declarative DSL for populating a fault tree,
// mirroring the teacher's circuit Builder: every call is chainable and
// the first error sticks, so a caller can write a long chain and check
// the error once at the end.
type Builder interface {
	AddExpression(id string, kind string, childIDs []string, constants []float64) Builder
	AddBasicEvent(id string, expressionID string) Builder
	AddHouseEvent(id string, state bool) Builder
	AddGate(id string, kind string, childIDs []string, k int) Builder
	SetTop(id string) Builder

	// Seal runs validation (C3) and returns the sealed tree plus any
	// warnings, or the first construction error / validation error.
	Seal(opts validate.Options) (*event.FaultTree, []validate.Warning, error)
}

// New returns a fresh Builder for a fault tree named name.
func New(name string) Builder { return &b{tree: event.NewFaultTree(name), exprs: make(map[string]*expr.Node)} }

type b struct {
	tree  *event.FaultTree
	exprs map[string]*expr.Node
	err   error
}

func (bd *b) bail(err error) Builder {
	if bd.err == nil {
		bd.err = err
	}
	return bd
}

func (bd *b) checkState() bool { return bd.err != nil }

// AddExpression registers an expression node. kind must name one of
// Const, Param, Exponential, GLM, Weibull, PeriodicTest4, PeriodicTest5,
// Add, Mul (spec §6). childIDs reference previously added expressions;
// constants supplies the literal for Const/Param.
func (bd *b) AddExpression(id string, kind string, childIDs []string, constants []float64) Builder {
	if bd.checkState() {
		return bd
	}
	k, err := expr.ParseKind(kind)
	if err != nil {
		return bd.bail(err)
	}
	children := make([]*expr.Node, 0, len(childIDs))
	for _, cid := range childIDs {
		c, ok := bd.exprs[cid]
		if !ok {
			return bd.bail(fmt.Errorf("builder: expression %q references unknown expression %q", id, cid))
		}
		children = append(children, c)
	}
	node, err := expr.NewFromKind(id, k, children, constants)
	if err != nil {
		return bd.bail(err)
	}
	if _, exists := bd.exprs[id]; exists {
		return bd.bail(fmt.Errorf("builder: expression %q already defined", id))
	}
	bd.exprs[id] = node
	return bd
}

// AddBasicEvent registers a basic event wired to a previously added
// expression.
func (bd *b) AddBasicEvent(id string, expressionID string) Builder {
	if bd.checkState() {
		return bd
	}
	be := event.NewBasicEvent(id)
	if expressionID != "" {
		node, ok := bd.exprs[expressionID]
		if !ok {
			return bd.bail(fmt.Errorf("builder: basic event %q references unknown expression %q", id, expressionID))
		}
		be.Expr = node
	}
	if err := bd.tree.RegisterBasicEvent(be); err != nil {
		return bd.bail(err)
	}
	return bd
}

// AddHouseEvent registers a house event with a fixed Boolean state.
func (bd *b) AddHouseEvent(id string, state bool) Builder {
	if bd.checkState() {
		return bd
	}
	he := event.NewHouseEvent(id, state)
	if err := bd.tree.RegisterHouseEvent(he); err != nil {
		return bd.bail(err)
	}
	return bd
}

// AddGate registers a gate of the given kind with the given children.
// Children are resolved against the tree as of this call, so a gate must
// be declared after every child it references (bottom-up order), the
// same requirement AddExpression already imposes on expression children.
// A child_id that still doesn't resolve becomes an event.DanglingRef
// placeholder rather than failing construction immediately; fta/validate's
// completeness check reports it by name at Seal time, matching spec
// scenario 5 ("dangling identifier... expect ValidationError naming X and
// the tree") — a permanently undefined reference, not one that would
// later resolve if declaration order were reversed.
func (bd *b) AddGate(id string, kind string, childIDs []string, k int) Builder {
	if bd.checkState() {
		return bd
	}
	gk, err := gatekind.Parse(kind)
	if err != nil {
		return bd.bail(err)
	}
	g := event.NewGate(id, gk, k)
	for _, cid := range childIDs {
		child, ok := bd.tree.Lookup(cid)
		if !ok {
			child = event.NewDanglingRef(cid)
		}
		if err := g.AddChild(child); err != nil {
			return bd.bail(fmt.Errorf("builder: gate %q: %w", id, err))
		}
	}
	if err := bd.tree.RegisterGate(g); err != nil {
		return bd.bail(err)
	}
	return bd
}

// SetTop designates the tree's top gate by identifier.
func (bd *b) SetTop(id string) Builder {
	if bd.checkState() {
		return bd
	}
	term, ok := bd.tree.Lookup(id)
	if !ok {
		return bd.bail(fmt.Errorf("builder: top gate %q not defined", id))
	}
	g, ok := term.(*event.Gate)
	if !ok {
		return bd.bail(fmt.Errorf("builder: top %q is not a gate", id))
	}
	if err := bd.tree.SetTop(g); err != nil {
		return bd.bail(err)
	}
	return bd
}

// Seal runs validation and returns the sealed tree. A construction error
// recorded earlier in the chain takes priority over running validation
// at all (spec's "bail on first error" discipline).
func (bd *b) Seal(opts validate.Options) (*event.FaultTree, []validate.Warning, error) {
	if bd.err != nil {
		return nil, nil, bd.err
	}
	warnings, err := validate.Seal(bd.tree, opts)
	if err != nil {
		return nil, nil, err
	}
	return bd.tree, warnings, nil
}

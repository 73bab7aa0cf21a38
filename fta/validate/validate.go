// Package validate implements the fault-tree validator (C3): cycle
// detection with path reporting, implicit-gate discovery, completeness,
// gate arity checks and basic-event probability readiness.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/expr"
	"github.com/kegliz/fta/fta/gatekind"
)

// ValidationError aggregates every diagnostic produced by one Seal call,
// following spec §7's "collected and reported together" policy and the
// Design Note replacing a shared mutable warnings buffer with a returned
// list.
type ValidationError struct {
	Tree        string
	Diagnostics []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate: tree %q failed validation:\n%s", e.Tree, strings.Join(e.Diagnostics, "\n"))
}

// Warning is a non-fatal diagnostic surfaced alongside a successful Seal.
type Warning string

// Options controls validation behavior that depends on the caller's
// intent (spec §4.3 step 5: missing basic-event probability is a warning
// unless probability analysis is requested).
type Options struct {
	RequireProbabilities bool
}

// Seal runs the full C3 sequence against tree starting at its top gate,
// registers any implicit gates discovered along the way, and — if no
// cycle is found — returns the collected warnings (or promotes them to
// an error when opts.RequireProbabilities is set). tree.Seal() is called
// only on overall success, matching "built by the parser, sealed by
// validation" from spec §3.
func Seal(tree *event.FaultTree, opts Options) ([]Warning, error) {
	if tree.Top == nil {
		return nil, &ValidationError{Tree: tree.Name, Diagnostics: []string{"no top gate set"}}
	}

	if err := detectCycles(tree); err != nil {
		return nil, err
	}

	var diagnostics []string
	diagnostics = append(diagnostics, checkCompleteness(tree)...)
	diagnostics = append(diagnostics, checkArity(tree)...)

	probDiags, probWarnings := checkProbabilities(tree, opts.RequireProbabilities)
	diagnostics = append(diagnostics, probDiags...)

	if len(diagnostics) > 0 {
		return nil, &ValidationError{Tree: tree.Name, Diagnostics: diagnostics}
	}

	tree.Seal()
	return probWarnings, nil
}

// detectCycles performs the DFS cycle-check (spec §4.3 step 1) and,
// along the same traversal, implicit-gate discovery (step 2): any
// gate-typed child not already in tree.Gates() is registered as both a
// reachable gate and an implicit one.
func detectCycles(tree *event.FaultTree) error {
	onPath := make(map[string]int) // normalized id -> position in path
	var path []*event.Gate

	var dfs func(g *event.Gate) error
	dfs = func(g *event.Gate) error {
		if pos, found := onPath[g.ID()]; found {
			cyclePath := make([]string, 0, len(path)-pos+1)
			for _, p := range path[pos:] {
				cyclePath = append(cyclePath, p.OriginalID())
			}
			cyclePath = append(cyclePath, g.OriginalID())
			return &ValidationError{
				Tree:        tree.Name,
				Diagnostics: []string{fmt.Sprintf("cycle detected: %s", strings.Join(cyclePath, "->"))},
			}
		}

		onPath[g.ID()] = len(path)
		path = append(path, g)

		for _, child := range g.SortedChildren() {
			gc, ok := child.(*event.Gate)
			if !ok {
				continue
			}
			if _, known := tree.Gates()[gc.ID()]; !known {
				tree.RegisterDiscoveredGate(gc)
			}
			if err := dfs(gc); err != nil {
				return err
			}
		}

		delete(onPath, g.ID())
		path = path[:len(path)-1]
		return nil
	}

	return dfs(tree.Top)
}

// checkCompleteness verifies every non-gate leaf resolves to a known
// primary event (spec §4.3 step 3); a dangling reference left by the
// builder surfaces here naming the offending identifier and tree.
func checkCompleteness(tree *event.FaultTree) []string {
	var diags []string
	for _, id := range sortedGateIDs(tree) {
		g := tree.Gates()[id]
		for _, child := range g.SortedChildren() {
			if d, ok := child.(*event.DanglingRef); ok {
				diags = append(diags, fmt.Sprintf(
					"undefined identifier %q referenced by gate %q in tree %q",
					d.OriginalID(), g.OriginalID(), tree.Name))
			}
		}
	}
	return diags
}

// checkArity validates each gate's kind-specific constraints, collecting
// every violation into one multi-line diagnostic batch (spec §4.3 step 4).
func checkArity(tree *event.FaultTree) []string {
	var diags []string
	for _, id := range sortedGateIDs(tree) {
		g := tree.Gates()[id]
		if err := gatekind.CheckArity(g.Kind, g.NumChildren(), g.K); err != nil {
			diags = append(diags, fmt.Sprintf("gate %q: %s", g.OriginalID(), err.Error()))
		}
	}
	return diags
}

// checkProbabilities collects basic events missing an expression (spec
// §4.3 step 5): a warning by default, promoted to diagnostics (and hence
// a ValidationError) when require is set. Every basic event that does
// carry an expression has that expression's parameters validated against
// spec §4.1's domain rules (negative rates, β ≤ 0, t < t0, zero GLM
// denominator) via expr.Node.ValidateTree, so a bad parameter is reported
// at seal time rather than silently clamped during analysis.
func checkProbabilities(tree *event.FaultTree, require bool) (diags []string, warnings []Warning) {
	ids := make([]string, 0, len(tree.BasicEvents()))
	for id := range tree.BasicEvents() {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		b := tree.BasicEvents()[id]
		if b.Expr == nil {
			msg := fmt.Sprintf("basic event %q has no probability expression", b.OriginalID())
			if require {
				diags = append(diags, msg)
			} else {
				warnings = append(warnings, Warning(msg))
			}
			continue
		}

		n, ok := b.Expr.(*expr.Node)
		if !ok {
			continue
		}
		if err := n.ValidateTree(); err != nil {
			diags = append(diags, fmt.Sprintf(
				"basic event %q: %s", b.OriginalID(), err.Error()))
		}
	}
	return diags, warnings
}

func sortedGateIDs(tree *event.FaultTree) []string {
	ids := make([]string, 0, len(tree.Gates()))
	for id := range tree.Gates() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

package event

import "sort"

// NodeView is one flattened, display-ready row describing a node
// reachable from a fault tree's top gate: its identifier, a short kind
// label, its depth from the top (0 = top gate) and the ids of its
// children in deterministic order.
//
// This plays the role the teacher's circuit.Operation/FromDAG played for
// laying out a quantum circuit for rendering (sort by computed layout
// key for stable display) — generalized here from a timestep/qubit-line
// layout key to a depth/identifier key appropriate for reporting a
// fault tree's structure instead of drawing it.
type NodeView struct {
	ID       string
	Original string
	Kind     string // "gate:<KIND>" (e.g. "gate:AND"), "basic" or "house"
	Word     string // gate's operator word ("and", "at-least", ...); "" for non-gates
	Symbol   string // gate's compact glyph ("&", "@", ...); "" for non-gates
	// LeafLogic marks single-child pass-through/negation gates (NOT, NULL)
	// as distinct from the multi-child combinators, the way a report
	// formatter would want to render them differently.
	LeafLogic bool
	Depth     int
	Children  []string
}

// Snapshot walks t from Top and returns every reachable node as a
// NodeView, sorted by depth then identifier for stable, reproducible
// report output (the same "sort after traversal" discipline spec §4.3
// requires for validator diagnostics).
func Snapshot(t *FaultTree) []NodeView {
	if t.Top == nil {
		return nil
	}
	depth := make(map[string]int)
	views := make(map[string]NodeView)

	var walk func(term Term, d int)
	walk = func(term Term, d int) {
		id := term.ID()
		if prev, seen := depth[id]; seen && prev <= d {
			return
		}
		depth[id] = d

		switch v := term.(type) {
		case *Gate:
			kids := v.SortedChildren()
			ids := make([]string, 0, len(kids))
			for _, c := range kids {
				ids = append(ids, c.ID())
			}
			views[id] = NodeView{
				ID: id, Original: v.OriginalID(), Kind: "gate:" + v.Kind.String(),
				Word: v.Kind.Word(), Symbol: v.Kind.Symbol(), LeafLogic: v.Kind.IsLeafLogic(),
				Depth: d, Children: ids,
			}
			for _, c := range kids {
				walk(c, d+1)
			}
		case *BasicEvent:
			views[id] = NodeView{ID: id, Original: v.OriginalID(), Kind: "basic", Depth: d}
		case *HouseEvent:
			views[id] = NodeView{ID: id, Original: v.OriginalID(), Kind: "house", Depth: d}
		}
	}
	walk(t.Top, 0)

	out := make([]NodeView, 0, len(views))
	for _, v := range views {
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth < out[j].Depth
		}
		return out[i].ID < out[j].ID
	})
	return out
}

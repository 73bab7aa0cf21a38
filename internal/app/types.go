package app

import "github.com/kegliz/fta/fta/event"

// ExpressionRequest mirrors spec §6's add_expression(id, kind,
// child_ids, constants).
type ExpressionRequest struct {
	ID        string    `json:"id" binding:"required"`
	Kind      string    `json:"kind" binding:"required"`
	Children  []string  `json:"children"`
	Constants []float64 `json:"constants"`
}

// GateRequest mirrors spec §6's add_gate(tree, id, kind, child_ids,
// params), with K carrying the K-out-of-N/ATLEAST parameter.
type GateRequest struct {
	ID       string   `json:"id" binding:"required"`
	Kind     string   `json:"kind" binding:"required"`
	Children []string `json:"children"`
	K        int      `json:"k"`
}

// BasicEventRequest mirrors spec §6's add_basic_event(tree, id,
// expression_id).
type BasicEventRequest struct {
	ID         string `json:"id" binding:"required"`
	Expression string `json:"expression"`
}

// HouseEventRequest mirrors spec §6's add_house_event(tree, id, state).
type HouseEventRequest struct {
	ID    string `json:"id" binding:"required"`
	State bool   `json:"state"`
}

// TreeRequest is the inbound payload for POST /api/trees: a complete
// model ready for new_fault_tree/add_*/seal (spec §6 "Inbound").
// Expressions are processed before basic events so expression
// references resolve in one pass, mirroring the builder's own
// declare-before-reference rule for expressions. Gates follow the same
// rule: they are added in list order, so a gate must come after every
// child gate it names; a child that is not yet declared is reported as
// an undefined identifier when the tree is sealed.
type TreeRequest struct {
	Name        string              `json:"name" binding:"required"`
	Expressions []ExpressionRequest `json:"expressions"`
	BasicEvents []BasicEventRequest `json:"basic_events"`
	HouseEvents []HouseEventRequest `json:"house_events"`
	Gates       []GateRequest       `json:"gates"`
	Top         string              `json:"top" binding:"required"`

	// RequireProbabilities promotes missing-probability warnings to a
	// ValidationError (spec §4.3 step 5).
	RequireProbabilities bool `json:"require_probabilities"`
}

// TreeResponse is returned once a tree has been built and sealed.
type TreeResponse struct {
	ID       string   `json:"id"`
	Warnings []string `json:"warnings,omitempty"`
}

// TreeStructureResponse is the GET /api/trees/:id payload: the tree's
// name plus its flattened node-by-node structure (event.Snapshot).
type TreeStructureResponse struct {
	Name  string           `json:"name"`
	Nodes []event.NodeView `json:"nodes"`
}

// AnalyzeRequest carries spec §6's enumerated configuration overrides;
// nil fields, an empty Strategy and a zero Workers keep the server's
// configured values (internal/config's AnalysisConfig).
type AnalyzeRequest struct {
	LimitOrder        *int     `json:"limit_order"`
	CutOff            *float64 `json:"cut_off"`
	NSums             *int     `json:"n_sums"`
	RareEvent         *bool    `json:"rare_event"`
	NSimulations      *int     `json:"n_simulations"`
	Seed              *uint64  `json:"seed"`
	ComputeImportance *bool    `json:"compute_importance"`
	Strategy          string   `json:"strategy"`
	Workers           int      `json:"workers"`
}

package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/fta/fta/analyze"
	"github.com/kegliz/fta/fta/builder"
	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/validate"
)

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// RootHandler is the handler for the / endpoint
func (a *appServer) RootHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving root endpoint")

	c.JSON(http.StatusOK, gin.H{"service": "fta", "version": a.version})
}

// HealthHandler is the handler for the /health endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// CreateTree is the handler for POST /api/trees: builds a fault tree
// from the request via fta/builder, seals it (C3), stores it, and
// returns its id plus any non-fatal warnings.
func (a *appServer) CreateTree(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving tree creation endpoint")

	var req TreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	tree, warnings, err := a.buildTree(&req)
	if err != nil {
		l.Warn().Err(err).Str("tree", req.Name).Msg("building/sealing tree failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	id, err := a.store.SaveTree(tree)
	if err != nil {
		l.Error().Err(err).Msg("saving tree failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}

	resp := TreeResponse{ID: id}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, string(w))
	}
	c.JSON(http.StatusOK, resp)
}

// buildTree drives the builder DSL from a TreeRequest (spec §6
// "Inbound"): expressions, then primary events (so add_basic_event's
// expression_id reference resolves), then gates — which must be ordered
// bottom-up, since a gate only resolves children already declared — then
// the top designation, finishing with Seal.
func (a *appServer) buildTree(req *TreeRequest) (*event.FaultTree, []validate.Warning, error) {
	b := builder.New(req.Name)

	for _, e := range req.Expressions {
		b.AddExpression(e.ID, e.Kind, e.Children, e.Constants)
	}
	for _, be := range req.BasicEvents {
		b.AddBasicEvent(be.ID, be.Expression)
	}
	for _, he := range req.HouseEvents {
		b.AddHouseEvent(he.ID, he.State)
	}
	for _, g := range req.Gates {
		b.AddGate(g.ID, g.Kind, g.Children, g.K)
	}
	b.SetTop(req.Top)

	return b.Seal(validate.Options{RequireProbabilities: req.RequireProbabilities})
}

// GetTree is the handler for GET /api/trees/:id: returns the stored
// tree's name and flattened node structure (event.Snapshot), for a
// caller that wants to display the model it submitted rather than
// re-send it.
func (a *appServer) GetTree(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	id := c.Param("id")
	l.Debug().Str("id", id).Msg("serving tree fetch endpoint")

	tree, err := a.store.GetTree(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tree not found"})
		return
	}

	c.JSON(http.StatusOK, TreeStructureResponse{Name: tree.Name, Nodes: event.Snapshot(tree)})
}

// AnalyzeTree is the handler for POST /api/trees/:id/analyze: runs
// fta/analyze against the stored tree and persists the result.
func (a *appServer) AnalyzeTree(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	id := c.Param("id")
	l.Debug().Str("id", id).Msg("serving analyze endpoint")

	tree, err := a.store.GetTree(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tree not found"})
		return
	}

	var req AnalyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			l.Error().Err(err).Msg("binding JSON failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
			return
		}
	}

	cfg := a.cfg.AnalysisConfig()
	applyOverrides(&cfg, &req)

	result := analyze.Run(c.Request.Context(), tree, cfg, l)
	if err := a.store.SaveResult(id, result); err != nil {
		l.Error().Err(err).Msg("saving result failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResult is the handler for GET /api/trees/:id/result.
func (a *appServer) GetResult(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	id := c.Param("id")
	l.Debug().Str("id", id).Msg("serving result fetch endpoint")

	result, err := a.store.GetResult(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func applyOverrides(cfg *analyze.Config, req *AnalyzeRequest) {
	if req.LimitOrder != nil {
		cfg.LimitOrder = *req.LimitOrder
	}
	if req.CutOff != nil {
		cfg.CutOff = *req.CutOff
	}
	if req.NSums != nil {
		cfg.NSums = *req.NSums
	}
	if req.RareEvent != nil {
		cfg.RareEvent = *req.RareEvent
	}
	if req.NSimulations != nil {
		cfg.NSimulations = *req.NSimulations
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.ComputeImportance != nil {
		cfg.ComputeImportance = *req.ComputeImportance
	}
	if req.Strategy != "" {
		cfg.Strategy = req.Strategy
	}
	if req.Workers != 0 {
		cfg.Workers = req.Workers
	}
}

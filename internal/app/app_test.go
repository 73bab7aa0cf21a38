package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kegliz/fta/fta/analyze"
	"github.com/kegliz/fta/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *appServer {
	t.Helper()
	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)
	srv, err := NewServer(ServerOptions{C: cfg, Version: "test"})
	require.NoError(t, err)
	return srv.(*appServer)
}

func do(t *testing.T, a *appServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// orTreeRequest builds spec §8 scenario 1's model: OR of A(p=0.1), B(p=0.2).
func orTreeRequest() TreeRequest {
	return TreeRequest{
		Name: "or-of-two",
		Expressions: []ExpressionRequest{
			{ID: "pa", Kind: "const", Constants: []float64{0.1}},
			{ID: "pb", Kind: "const", Constants: []float64{0.2}},
		},
		BasicEvents: []BasicEventRequest{
			{ID: "A", Expression: "pa"},
			{ID: "B", Expression: "pb"},
		},
		Gates: []GateRequest{
			{ID: "TOP", Kind: "OR", Children: []string{"A", "B"}},
		},
		Top: "TOP",
	}
}

func TestHealthAndRoot(t *testing.T) {
	a := newTestServer(t)

	rec := do(t, a, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, a, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAnalyzeFetchFlow(t *testing.T) {
	a := newTestServer(t)

	rec := do(t, a, http.MethodPost, "/api/trees", orTreeRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var created TreeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = do(t, a, http.MethodPost, "/api/trees/"+created.ID+"/analyze", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result analyze.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.InDelta(t, 0.28, result.Top, 1e-9)
	assert.Len(t, result.CutSets, 2)

	rec = do(t, a, http.MethodGet, "/api/trees/"+created.ID+"/result", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched analyze.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, result.Top, fetched.Top)
}

func TestGetTreeReturnsStructure(t *testing.T) {
	a := newTestServer(t)

	rec := do(t, a, http.MethodPost, "/api/trees", orTreeRequest())
	require.Equal(t, http.StatusOK, rec.Code)
	var created TreeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, a, http.MethodGet, "/api/trees/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var structure TreeStructureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &structure))
	assert.Equal(t, "or-of-two", structure.Name)
	require.Len(t, structure.Nodes, 3)
	assert.Equal(t, "top", structure.Nodes[0].ID)
	assert.Equal(t, "gate:OR", structure.Nodes[0].Kind)
	assert.Equal(t, "or", structure.Nodes[0].Word)
}

func TestGetTreeUnknownID(t *testing.T) {
	a := newTestServer(t)

	rec := do(t, a, http.MethodGet, "/api/trees/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTreeRejectsUnsealed(t *testing.T) {
	a := newTestServer(t)

	req := orTreeRequest()
	req.Gates[0].Children = append(req.Gates[0].Children, "missing")

	rec := do(t, a, http.MethodPost, "/api/trees", req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeUnknownTree(t *testing.T) {
	a := newTestServer(t)

	rec := do(t, a, http.MethodPost, "/api/trees/does-not-exist/analyze", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResultUnknownTree(t *testing.T) {
	a := newTestServer(t)

	rec := do(t, a, http.MethodGet, "/api/trees/does-not-exist/result", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

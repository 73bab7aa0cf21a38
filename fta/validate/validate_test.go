package validate

import (
	"testing"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/expr"
	"github.com/kegliz/fta/fta/gatekind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimpleOR(t *testing.T) *event.FaultTree {
	t.Helper()
	tree := event.NewFaultTree("demo")
	top := event.NewGate("TOP", gatekind.OR, 0)
	a := event.NewBasicEvent("A")
	b := event.NewBasicEvent("B")
	a.Expr = expr.NewConst("pa", 0.1)
	b.Expr = expr.NewConst("pb", 0.2)

	require.NoError(t, tree.RegisterGate(top))
	require.NoError(t, tree.RegisterBasicEvent(a))
	require.NoError(t, tree.RegisterBasicEvent(b))
	require.NoError(t, top.AddChild(a))
	require.NoError(t, top.AddChild(b))
	require.NoError(t, tree.SetTop(top))
	return tree
}

func TestSealSuccess(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := buildSimpleOR(t)
	warnings, err := Seal(tree, Options{})
	require.NoError(err)
	assert.Empty(warnings)
	assert.True(tree.Sealed())
}

func TestSealTwiceIsNoOp(t *testing.T) {
	require := require.New(t)

	tree := buildSimpleOR(t)
	_, err := Seal(tree, Options{})
	require.NoError(err)

	// P5: sealing twice is a no-op on diagnostics. Sealing an already
	// sealed tree re-runs the read-only checks (no mutation occurs) and
	// must still report success.
	warnings, err := Seal(tree, Options{})
	require.NoError(err)
	require.Empty(warnings)
}

func TestCycleDetection(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("demo")
	g1 := event.NewGate("G1", gatekind.AND, 0)
	g2 := event.NewGate("G2", gatekind.AND, 0)
	require.NoError(tree.RegisterGate(g1))
	require.NoError(tree.RegisterGate(g2))
	require.NoError(g1.AddChild(g2))
	require.NoError(g2.AddChild(g1))
	require.NoError(tree.SetTop(g1))

	_, err := Seal(tree, Options{})
	require.Error(err)
	var ve *ValidationError
	require.ErrorAs(err, &ve)
	assert.Contains(ve.Diagnostics[0], "G1->G2->G1")
}

func TestDanglingIdentifier(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("demo")
	top := event.NewGate("TOP", gatekind.OR, 0)
	require.NoError(tree.RegisterGate(top))
	require.NoError(top.AddChild(event.NewDanglingRef("X")))
	require.NoError(tree.SetTop(top))

	_, err := Seal(tree, Options{})
	require.Error(err)
	var ve *ValidationError
	require.ErrorAs(err, &ve)
	assert.Contains(ve.Diagnostics[0], "X")
	assert.Contains(ve.Diagnostics[0], "demo")
}

func TestImplicitGateDiscovery(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("demo")
	top := event.NewGate("TOP", gatekind.AND, 0)
	inner := event.NewGate("INNER", gatekind.OR, 0)
	a := event.NewBasicEvent("A")
	a.Expr = expr.NewConst("pa", 0.1)
	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.RegisterBasicEvent(a))
	require.NoError(inner.AddChild(a))
	require.NoError(top.AddChild(inner))
	require.NoError(tree.SetTop(top))

	_, err := Seal(tree, Options{})
	require.NoError(err)
	assert.True(tree.ImplicitGates()["inner"])
	assert.Contains(tree.Gates(), "inner")
}

func TestArityViolationsCollected(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("demo")
	top := event.NewGate("TOP", gatekind.XOR, 0)
	a := event.NewBasicEvent("A")
	b := event.NewBasicEvent("B")
	c := event.NewBasicEvent("C")
	require.NoError(tree.RegisterGate(top))
	require.NoError(top.AddChild(a))
	require.NoError(top.AddChild(b))
	require.NoError(top.AddChild(c))
	require.NoError(tree.SetTop(top))

	_, err := Seal(tree, Options{})
	require.Error(err)
	var ve *ValidationError
	require.ErrorAs(err, &ve)
	assert.Contains(ve.Diagnostics[0], "exactly 2 children")
}

func TestMissingProbabilityWarnsByDefault(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("demo")
	top := event.NewGate("TOP", gatekind.OR, 0)
	a := event.NewBasicEvent("A") // no Expr wired
	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.RegisterBasicEvent(a))
	require.NoError(top.AddChild(a))
	require.NoError(tree.SetTop(top))

	warnings, err := Seal(tree, Options{})
	require.NoError(err)
	require.Len(warnings, 1)
	assert.Contains(string(warnings[0]), "A")
}

func TestSealRejectsOutOfRangeExpressionParameter(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("demo")
	top := event.NewGate("TOP", gatekind.OR, 0)
	a := event.NewBasicEvent("A")
	lambda := expr.NewConst("lambda", -1e-3) // negative rate, invalid
	tv := expr.NewConst("t", 1000)
	a.Expr = expr.NewExponential("pa", lambda, tv)
	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.RegisterBasicEvent(a))
	require.NoError(top.AddChild(a))
	require.NoError(tree.SetTop(top))

	_, err := Seal(tree, Options{})
	require.Error(err)
	var ve *ValidationError
	require.ErrorAs(err, &ve)
	assert.Contains(ve.Diagnostics[0], "A")
	assert.Contains(ve.Diagnostics[0], "lambda")
}

func TestMissingProbabilityErrorsWhenRequired(t *testing.T) {
	require := require.New(t)

	tree := event.NewFaultTree("demo")
	top := event.NewGate("TOP", gatekind.OR, 0)
	a := event.NewBasicEvent("A")
	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.RegisterBasicEvent(a))
	require.NoError(top.AddChild(a))
	require.NoError(tree.SetTop(top))

	_, err := Seal(tree, Options{RequireProbabilities: true})
	require.Error(err)
}

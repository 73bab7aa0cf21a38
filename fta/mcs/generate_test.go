package mcs

import (
	"testing"

	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/gatekind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sealedOR(t *testing.T) *event.FaultTree {
	t.Helper()
	tree := event.NewFaultTree("or-demo")
	top := event.NewGate("TOP", gatekind.OR, 0)
	a := event.NewBasicEvent("A")
	b := event.NewBasicEvent("B")
	require.NoError(t, tree.RegisterGate(top))
	require.NoError(t, tree.RegisterBasicEvent(a))
	require.NoError(t, tree.RegisterBasicEvent(b))
	require.NoError(t, top.AddChild(a))
	require.NoError(t, top.AddChild(b))
	require.NoError(t, tree.SetTop(top))
	tree.Seal()
	return tree
}

func TestScenario1_ORTwoBasics(t *testing.T) {
	assert := assert.New(t)
	tree := sealedOR(t)
	idx := BuildIndex(tree)

	sets := Generate(tree, idx, 20)
	require.Len(t, sets, 2)

	aIdx, _ := idx.Of("a")
	bIdx, _ := idx.Of("b")
	assert.Contains(sets, CutSet{aIdx})
	assert.Contains(sets, CutSet{bIdx})
}

func TestScenario2_ANDTwoBasics(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("and-demo")
	top := event.NewGate("TOP", gatekind.AND, 0)
	a := event.NewBasicEvent("A")
	b := event.NewBasicEvent("B")
	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.RegisterBasicEvent(a))
	require.NoError(tree.RegisterBasicEvent(b))
	require.NoError(top.AddChild(a))
	require.NoError(top.AddChild(b))
	require.NoError(tree.SetTop(top))
	tree.Seal()

	idx := BuildIndex(tree)
	sets := Generate(tree, idx, 20)
	require.Len(sets, 1)

	aIdx, _ := idx.Of("a")
	bIdx, _ := idx.Of("b")
	assert.Equal(CutSet{aIdx, bIdx}, sets[0])
}

func TestScenario3_TwoOfThree(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := event.NewFaultTree("kofn-demo")
	top := event.NewGate("TOP", gatekind.KOFN, 2)
	a := event.NewBasicEvent("A")
	b := event.NewBasicEvent("B")
	c := event.NewBasicEvent("C")
	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.RegisterBasicEvent(a))
	require.NoError(tree.RegisterBasicEvent(b))
	require.NoError(tree.RegisterBasicEvent(c))
	require.NoError(top.AddChild(a))
	require.NoError(top.AddChild(b))
	require.NoError(top.AddChild(c))
	require.NoError(tree.SetTop(top))
	tree.Seal()

	idx := BuildIndex(tree)
	sets := Generate(tree, idx, 20)
	require.Len(sets, 3)

	ai, _ := idx.Of("a")
	bi, _ := idx.Of("b")
	ci, _ := idx.Of("c")
	assert.Contains(sets, CutSet{ai, bi})
	assert.Contains(sets, CutSet{ai, ci})
	assert.Contains(sets, CutSet{bi, ci})
}

func TestScenario7_HouseEvent(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	buildTree := func(state bool) (*event.FaultTree, Index) {
		tree := event.NewFaultTree("house-demo")
		top := event.NewGate("TOP", gatekind.OR, 0)
		a := event.NewBasicEvent("A")
		h := event.NewHouseEvent("H", state)
		require.NoError(tree.RegisterGate(top))
		require.NoError(tree.RegisterBasicEvent(a))
		require.NoError(tree.RegisterHouseEvent(h))
		require.NoError(top.AddChild(a))
		require.NoError(top.AddChild(h))
		require.NoError(tree.SetTop(top))
		tree.Seal()
		return tree, BuildIndex(tree)
	}

	treeTrue, idxTrue := buildTree(true)
	setsTrue := Generate(treeTrue, idxTrue, 20)
	// House true makes the OR branch unconditionally satisfied: an
	// empty cut set (always-true top event).
	require.Len(setsTrue, 1)
	assert.Empty(setsTrue[0])

	treeFalse, idxFalse := buildTree(false)
	setsFalse := Generate(treeFalse, idxFalse, 20)
	aIdx, _ := idxFalse.Of("a")
	require.Len(setsFalse, 1)
	assert.Equal(CutSet{aIdx}, setsFalse[0])
}

func TestMinimizeRemovesStrictSupersets(t *testing.T) {
	assert := assert.New(t)
	in := []CutSet{{1, 2}, {1}, {1, 2, 3}, {2}}
	out := Minimize(in)
	assert.Equal([]CutSet{{1}, {2}}, out)
}

func TestCombinationsLexicographicOrder(t *testing.T) {
	assert := assert.New(t)
	combos := combinations(4, 2)
	assert.Equal([][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, combos)
}

package event

import (
	"testing"

	"github.com/kegliz/fta/fta/gatekind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGateAddChild(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	g := NewGate("G1", gatekind.OR, 0)
	a := NewBasicEvent("A")
	b := NewBasicEvent("B")

	require.NoError(g.AddChild(a))
	require.NoError(g.AddChild(b))
	assert.Equal(2, g.NumChildren())

	err := g.AddChild(a)
	assert.ErrorIs(err, ErrDuplicateChild)

	assert.Contains(a.Parents(), g)
}

func TestSortedChildrenOrder(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := NewGate("G1", gatekind.AND, 0)
	c := NewBasicEvent("C")
	a := NewBasicEvent("A")
	b := NewBasicEvent("B")
	require.NoError(g.AddChild(c))
	require.NoError(g.AddChild(a))
	require.NoError(g.AddChild(b))

	sorted := g.SortedChildren()
	require.Len(sorted, 3)
	assert.Equal("a", sorted[0].ID())
	assert.Equal("b", sorted[1].ID())
	assert.Equal("c", sorted[2].ID())
}

func TestNormalizedIdentifiers(t *testing.T) {
	assert := assert.New(t)
	a := NewBasicEvent(" Pump-A ")
	assert.Equal("pump-a", a.ID())
	assert.Equal(" Pump-A ", a.OriginalID())
}

func TestFaultTreeRegisterAndLookup(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := NewFaultTree("demo")
	top := NewGate("TOP", gatekind.OR, 0)
	a := NewBasicEvent("A")
	b := NewBasicEvent("B")

	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.RegisterBasicEvent(a))
	require.NoError(tree.RegisterBasicEvent(b))
	require.NoError(top.AddChild(a))
	require.NoError(top.AddChild(b))
	require.NoError(tree.SetTop(top))

	found, ok := tree.Lookup("a")
	require.True(ok)
	assert.Same(a, found)

	_, ok = tree.Lookup("nonexistent")
	assert.False(ok)

	dup := NewGate("TOP", gatekind.AND, 0)
	err := tree.RegisterGate(dup)
	assert.ErrorIs(err, ErrDuplicateID)
}

func TestSealPreventsMutation(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := NewFaultTree("demo")
	top := NewGate("TOP", gatekind.OR, 0)
	require.NoError(tree.RegisterGate(top))
	require.NoError(tree.SetTop(top))

	assert.False(tree.Sealed())
	tree.Seal()
	assert.True(tree.Sealed())

	err := tree.RegisterBasicEvent(NewBasicEvent("A"))
	assert.ErrorIs(err, ErrSealed)
}

func TestSortedBasicEventIDs(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tree := NewFaultTree("demo")
	require.NoError(tree.RegisterBasicEvent(NewBasicEvent("C")))
	require.NoError(tree.RegisterBasicEvent(NewBasicEvent("A")))
	require.NoError(tree.RegisterBasicEvent(NewBasicEvent("B")))

	assert.Equal([]string{"a", "b", "c"}, tree.SortedBasicEventIDs())
}

func TestProbabilityHouseEvent(t *testing.T) {
	assert := assert.New(t)

	trueHouse := NewHouseEvent("H1", true)
	falseHouse := NewHouseEvent("H2", false)
	assert.Equal(1.0, Probability(trueHouse))
	assert.Equal(0.0, Probability(falseHouse))
}

func TestRegisterDiscoveredGate(t *testing.T) {
	assert := assert.New(t)

	tree := NewFaultTree("demo")
	g := NewGate("INNER", gatekind.AND, 0)
	tree.RegisterDiscoveredGate(g)

	assert.Contains(tree.Gates(), "inner")
	assert.True(tree.ImplicitGates()["inner"])
}

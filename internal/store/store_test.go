package store

import (
	"testing"

	"github.com/kegliz/fta/fta/analyze"
	"github.com/kegliz/fta/fta/event"
	"github.com/kegliz/fta/fta/gatekind"
	"github.com/stretchr/testify/assert"
)

func orOfTwoTree(t *testing.T) *event.FaultTree {
	t.Helper()
	tree := event.NewFaultTree("t")
	a := event.NewBasicEvent("A")
	b := event.NewBasicEvent("B")
	assert.NoError(t, tree.RegisterBasicEvent(a))
	assert.NoError(t, tree.RegisterBasicEvent(b))
	top := event.NewGate("TOP", gatekind.OR, 0)
	assert.NoError(t, top.AddChild(a))
	assert.NoError(t, top.AddChild(b))
	assert.NoError(t, tree.RegisterGate(top))
	assert.NoError(t, tree.SetTop(top))
	return tree
}

func TestStoreSaveAndGetTree(t *testing.T) {
	s := New()

	tree1 := orOfTwoTree(t)
	tree2 := orOfTwoTree(t)

	id1, err := s.SaveTree(tree1)
	assert.NoError(t, err)
	id2, err := s.SaveTree(tree2)
	assert.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	got, err := s.GetTree(id1)
	assert.NoError(t, err)
	assert.Same(t, tree1, got)

	_, err = s.GetTree("does-not-exist")
	assert.Error(t, err)
}

func TestStoreSaveAndGetResult(t *testing.T) {
	s := New()
	tree := orOfTwoTree(t)

	id, err := s.SaveTree(tree)
	assert.NoError(t, err)

	res := analyze.Result{TreeName: "t", Top: 0.28}
	assert.NoError(t, s.SaveResult(id, res))

	got, err := s.GetResult(id)
	assert.NoError(t, err)
	assert.Equal(t, res, got)

	_, err = s.GetResult("does-not-exist")
	assert.Error(t, err)

	err = s.SaveResult("does-not-exist", res)
	assert.Error(t, err)
}

func TestNewStoreEmpty(t *testing.T) {
	s := New()
	_, err := s.GetTree("anything")
	assert.Error(t, err)
}

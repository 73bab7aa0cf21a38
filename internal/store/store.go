// Package store is an in-memory, uuid-keyed store for sealed fault
// trees and their analysis results, the REST layer's only notion of
// persistence (spec §1 lists "persistent storage of intermediate state"
// as a Non-goal — entries live in process memory for as long as the
// server runs, across requests, and are lost when it exits).
//
// Grounded on the teacher's qservice/pstore.go: a map guarded by
// sync.RWMutex, uuid.New() ids, a narrow interface with Save/Get pairs.
// Adapted here to hold two independent resources (models, results)
// instead of qprog.Program, since the REST flow has a submit step and a
// separate analyze step rather than one combined save.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kegliz/fta/fta/analyze"
	"github.com/kegliz/fta/fta/event"
)

// ModelStore holds sealed fault trees keyed by an opaque id assigned at
// submission time.
type ModelStore interface {
	SaveTree(tree *event.FaultTree) (string, error)
	GetTree(id string) (*event.FaultTree, error)
}

// ResultStore holds analysis results keyed by the id of the tree they
// were computed from.
type ResultStore interface {
	SaveResult(treeID string, result analyze.Result) error
	GetResult(treeID string) (analyze.Result, error)
}

// Store is the combined ModelStore/ResultStore the REST handlers use.
type Store interface {
	ModelStore
	ResultStore
}

type memStore struct {
	mu      sync.RWMutex
	trees   map[string]*event.FaultTree
	results map[string]analyze.Result
}

// New creates a new, empty in-memory Store.
func New() Store {
	return &memStore{
		trees:   make(map[string]*event.FaultTree),
		results: make(map[string]analyze.Result),
	}
}

// SaveTree assigns a fresh id to tree and stores it. tree must already
// be sealed (validated) by the caller; SaveTree does not validate.
func (s *memStore) SaveTree(tree *event.FaultTree) (string, error) {
	if tree == nil {
		return "", fmt.Errorf("store: cannot save a nil tree")
	}
	id := uuid.New().String()
	s.mu.Lock()
	s.trees[id] = tree
	s.mu.Unlock()
	return id, nil
}

// GetTree returns the tree stored under id.
func (s *memStore) GetTree(id string) (*event.FaultTree, error) {
	s.mu.RLock()
	t, ok := s.trees[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("store: tree %q not found", id)
	}
	return t, nil
}

// SaveResult stores result under the id of the tree it was computed
// from, overwriting any prior result for that id (re-analysis replaces,
// it does not accumulate).
func (s *memStore) SaveResult(treeID string, result analyze.Result) error {
	if _, err := s.GetTree(treeID); err != nil {
		return err
	}
	s.mu.Lock()
	s.results[treeID] = result
	s.mu.Unlock()
	return nil
}

// GetResult returns the most recently saved result for treeID.
func (s *memStore) GetResult(treeID string) (analyze.Result, error) {
	s.mu.RLock()
	r, ok := s.results[treeID]
	s.mu.RUnlock()
	if !ok {
		return analyze.Result{}, fmt.Errorf("store: no result for tree %q", treeID)
	}
	return r, nil
}

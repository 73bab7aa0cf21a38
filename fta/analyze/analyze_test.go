package analyze

import (
	"context"
	"testing"

	"github.com/kegliz/fta/fta/builder"
	"github.com/kegliz/fta/fta/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScenario1_ORExact(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("or-of-two")
	tree, _, err := bd.
		AddExpression("pa", "const", nil, []float64{0.1}).
		AddExpression("pb", "const", nil, []float64{0.2}).
		AddBasicEvent("A", "pa").
		AddBasicEvent("B", "pb").
		AddGate("TOP", "or", []string{"A", "B"}, 0).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	res := Run(context.Background(), tree, DefaultConfig(), nil)
	assert.InDelta(0.28, res.Top, 1e-9)
	assert.Equal("or-of-two", res.TreeName)
	require.Len(res.CutSetIDs, 2)
	assert.Nil(res.MonteCarlo)
}

func TestRunCutSetIDsMatchBasicEvents(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("two-of-three")
	tree, _, err := bd.
		AddExpression("p", "const", nil, []float64{0.1}).
		AddBasicEvent("A", "p").
		AddBasicEvent("B", "p").
		AddBasicEvent("C", "p").
		AddGate("TOP", "kofn", []string{"A", "B", "C"}, 2).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	res := Run(context.Background(), tree, DefaultConfig(), nil)
	require.Len(res.CutSetIDs, 3)
	seen := map[string]bool{}
	for _, ids := range res.CutSetIDs {
		require.Len(ids, 2)
		for _, id := range ids {
			seen[id] = true
		}
	}
	assert.True(seen["A"] && seen["B"] && seen["C"])
}

func TestRunRareEventAndMonteCarloWarns(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("rare-plus-mc")
	tree, _, err := bd.
		AddExpression("pa", "const", nil, []float64{0.2}).
		AddBasicEvent("A", "pa").
		AddGate("TOP", "or", []string{"A"}, 0).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	cfg := DefaultConfig()
	cfg.RareEvent = true
	cfg.NSimulations = 50
	cfg.Seed = 1

	res := Run(context.Background(), tree, cfg, nil)
	require.NotNil(res.MonteCarlo)
	assert.Len(res.MonteCarlo.Iterations, 50)

	found := false
	for _, w := range res.Warnings {
		if w == "rare-event approximation disabled: n_simulations > 0 takes precedence" {
			found = true
		}
	}
	assert.True(found, "expected rare-event/montecarlo precedence warning, got %v", res.Warnings)
}

func TestRunHouseEventFalseBranch(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("house-false")
	tree, _, err := bd.
		AddExpression("pa", "const", nil, []float64{0.1}).
		AddBasicEvent("A", "pa").
		AddHouseEvent("H", false).
		AddGate("TOP", "or", []string{"A", "H"}, 0).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	res := Run(context.Background(), tree, DefaultConfig(), nil)
	assert.InDelta(0.1, res.Top, 1e-9)
}

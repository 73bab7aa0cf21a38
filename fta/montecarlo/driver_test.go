package montecarlo

import (
	"context"
	"testing"

	"github.com/kegliz/fta/fta/builder"
	"github.com/kegliz/fta/fta/mcs"
	"github.com/kegliz/fta/fta/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSerialDeterministic(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("mc-determinism")
	tree, _, err := bd.
		AddExpression("pa", "const", nil, []float64{0.3}).
		AddExpression("pb", "const", nil, []float64{0.1}).
		AddBasicEvent("A", "pa").
		AddBasicEvent("B", "pb").
		AddGate("TOP", "or", []string{"A", "B"}, 0).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	idx := mcs.BuildIndex(tree)
	cutSets := mcs.Generate(tree, idx, 20)

	opts := Options{NSimulations: 200, Seed: 42, NSums: 10, Strategy: "serial"}
	res1, err := Compute(context.Background(), tree, idx, cutSets, opts)
	require.NoError(err)
	res2, err := Compute(context.Background(), tree, idx, cutSets, opts)
	require.NoError(err)

	assert.Equal(res1.Mean, res2.Mean)
	assert.Equal(res1.Iterations, res2.Iterations)
	assert.Len(res1.Iterations, 200)
	assert.NotNil(res1.Quantiles)
}

func TestComputeDisabledWhenZeroSimulations(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("mc-disabled")
	tree, _, err := bd.
		AddExpression("pa", "const", nil, []float64{0.3}).
		AddBasicEvent("A", "pa").
		AddGate("TOP", "or", []string{"A"}, 0).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	idx := mcs.BuildIndex(tree)
	cutSets := mcs.Generate(tree, idx, 20)
	res, err := Compute(context.Background(), tree, idx, cutSets, Options{NSimulations: 0})
	require.NoError(err)
	assert.Zero(res.N)
}

func TestComputeStaticMatchesExpectedCount(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("mc-static")
	tree, _, err := bd.
		AddExpression("pa", "const", nil, []float64{0.5}).
		AddBasicEvent("A", "pa").
		AddGate("TOP", "or", []string{"A"}, 0).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	idx := mcs.BuildIndex(tree)
	cutSets := mcs.Generate(tree, idx, 20)
	res, err := Compute(context.Background(), tree, idx, cutSets, Options{
		NSimulations: 100, Seed: 7, NSums: 10, Strategy: "static", Workers: 4,
	})
	require.NoError(err)
	assert.Len(res.Iterations, 100)
}

// TestComputeStaticSharedExpressionIsRaceFree exercises the scenario the
// review flagged: three basic events referencing the same expression
// node, run through StaticDriver with more workers than the machine's
// core count so every worker is genuinely concurrent. Run with
// `go test -race` this must not report a data race on the shared
// expression node's sample cache, and repeat runs with the same seed
// must agree (P1).
func TestComputeStaticSharedExpressionIsRaceFree(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("mc-shared-expr")
	tree, _, err := bd.
		AddExpression("p", "const", nil, []float64{0.3}).
		AddBasicEvent("A", "p").
		AddBasicEvent("B", "p").
		AddBasicEvent("C", "p").
		AddGate("TOP", "kofn", []string{"A", "B", "C"}, 2).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	idx := mcs.BuildIndex(tree)
	cutSets := mcs.Generate(tree, idx, 20)

	opts := Options{NSimulations: 500, Seed: 99, NSums: 10, Strategy: "static", Workers: 16}
	res1, err := Compute(context.Background(), tree, idx, cutSets, opts)
	require.NoError(err)
	res2, err := Compute(context.Background(), tree, idx, cutSets, opts)
	require.NoError(err)

	assert.Equal(res1.Iterations, res2.Iterations)
	assert.Len(res1.Iterations, 500)
}

func TestComputeCancellation(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	bd := builder.New("mc-cancel")
	tree, _, err := bd.
		AddExpression("pa", "const", nil, []float64{0.1}).
		AddBasicEvent("A", "pa").
		AddGate("TOP", "or", []string{"A"}, 0).
		SetTop("TOP").
		Seal(validate.Options{})
	require.NoError(err)

	idx := mcs.BuildIndex(tree)
	cutSets := mcs.Generate(tree, idx, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Compute(ctx, tree, idx, cutSets, Options{NSimulations: 1000, Strategy: "serial"})
	assert.Error(err)
	assert.True(res.Cancelled)
}

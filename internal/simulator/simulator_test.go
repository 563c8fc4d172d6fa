package simulator

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/items"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestSelection(t *testing.T) {
	h := deck.MustParseCards("5c 5d 9s 9h W 3c 4d 6h")

	cards, res := BestSelection(h, nil)
	require.Len(t, cards, hand.Size)
	assert.Equal(t, hand.FullHouse, res.Category)
	assert.Equal(t, 210, res.Score)

	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	assert.ElementsMatch(t, []string{"club-5", "diamond-5", "spade-9", "heart-9", "Joker1"}, ids)
}

func TestBestSelectionShortHand(t *testing.T) {
	cards, res := BestSelection(deck.MustParseCards("5c 5d"), nil)
	assert.Nil(t, cards)
	assert.Zero(t, res.Score)
}

func TestNextCombinationCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{5, 1},
		{6, 6},
		{8, 56},
		{10, 252},
	}
	for _, tt := range tests {
		idx := []int{0, 1, 2, 3, 4}
		count := 1
		for nextCombination(idx, tt.n) {
			count++
		}
		assert.Equal(t, tt.want, count, "C(%d,5)", tt.n)
	}
}

func testConfig(games, workers int) Config {
	return Config{
		Games:   games,
		Seed:    99,
		Workers: workers,
		Rules:   game.DefaultRules(),
		Reserve: 1,
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := New(testConfig(12, 1)).Run(context.Background())
	require.NoError(t, err)
	b, err := New(testConfig(12, 4)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b, "results must not depend on the worker count")
	assert.Equal(t, 12, a.Games)
	require.NoError(t, a.Validate())
	assert.GreaterOrEqual(t, a.Subrounds, 12*game.DefaultRules().SubroundsPerRound)
}

func TestPlayGameFinishes(t *testing.T) {
	sim := New(testConfig(1, 1))
	res, err := sim.PlayGame(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.Seed)
	assert.GreaterOrEqual(t, res.RoundReached, 1)
	assert.Len(t, res.Categories, res.Subrounds)
	assert.Positive(t, res.FinalScore)
	for _, id := range res.Items {
		_, ok := items.Lookup(id)
		assert.True(t, ok, id)
	}
}

func TestRunProgress(t *testing.T) {
	cfg := testConfig(5, 2)
	var calls atomic.Int64
	cfg.Progress = func(done, total int) {
		calls.Add(1)
		assert.Equal(t, 5, total)
		assert.LessOrEqual(t, done, total)
	}
	_, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), calls.Load())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(4, 2)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := New(testConfig(0, 1)).Run(context.Background())
	assert.ErrorContains(t, err, "games must be positive")

	cfg := testConfig(1, 1)
	cfg.Rules.HandSize = 2
	_, err = New(cfg).Run(context.Background())
	assert.ErrorContains(t, err, "invalid rules")
}

func TestPrintSummary(t *testing.T) {
	stats, err := New(testConfig(6, 3)).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats)
	out := buf.String()
	assert.Contains(t, out, "Games played: 6")
	assert.Contains(t, out, "=== ROUNDS REACHED ===")
	assert.Contains(t, out, "95% CI")
}

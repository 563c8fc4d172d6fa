package scoring

import (
	"testing"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/items"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(t *testing.T, ids ...string) items.Set {
	t.Helper()
	var s items.Set
	for _, id := range ids {
		tpl, ok := items.Lookup(id)
		require.True(t, ok, id)
		s = append(s, items.Offer{Template: tpl, Price: tpl.BasePrice}.Item())
	}
	return s
}

func effects(es ...items.Effect) items.Set {
	s := make(items.Set, len(es))
	for i, e := range es {
		s[i] = items.Item{ID: "test", Effect: e}
	}
	return s
}

func TestMultiplierNoItems(t *testing.T) {
	for _, c := range hand.Categories {
		b := Multiplier(c, nil)
		assert.Equal(t, c.BaseMultiplier(), b.Base, c.String())
		assert.Equal(t, c.BaseMultiplier(), b.Final, c.String())
		assert.Zero(t, b.Boost)
		assert.Zero(t, b.Penalty)
	}
}

func TestMultiplierFullHouseAllBoost(t *testing.T) {
	b := Multiplier(hand.FullHouse, effects(items.MultiplierBoost{All: true, Factor: 2}))
	assert.Equal(t, Breakdown{Category: hand.FullHouse, Base: 7, Final: 14, Boost: 1, Penalty: 0}, b)
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		category hand.Category
		ids      []string
		want     Breakdown
	}{
		{"category boost hits", hand.FourOfAKind, []string{"four_of_a_kind_boost"},
			Breakdown{Base: 8, Final: 12, Boost: 0.5}},
		{"category boost misses", hand.Flush, []string{"four_of_a_kind_boost"},
			Breakdown{Base: 6, Final: 6}},
		{"all boosts stack", hand.Pair, []string{"all_hand_boost", "half_hand_boost"},
			Breakdown{Base: 2, Final: 6, Boost: 2}},
		{"pair demon raises base", hand.Pair, []string{"pair_demon"},
			Breakdown{Base: 4, Final: 4}},
		{"pair demon ignores other categories", hand.TwoPair, []string{"pair_demon"},
			Breakdown{Base: 3, Final: 3}},
		{"pair demon then boost", hand.Pair, []string{"pair_demon", "all_hand_boost"},
			Breakdown{Base: 4, Final: 8, Boost: 1}},
		{"lucky boost", hand.Straight, []string{"lucky_boost"},
			Breakdown{Base: 5, Final: 5.88, Boost: 0.2, Penalty: -0.02}},
		{"mixed hand hit", hand.ThreeOfAKind, []string{"three_backstab"},
			Breakdown{Base: 4, Final: 8, Boost: 1}},
		{"mixed hand cut", hand.FourOfAKind, []string{"three_backstab"},
			Breakdown{Base: 8, Final: 4, Boost: -0.5}},
		{"mixed hand miss", hand.Flush, []string{"crazy_pairs"},
			Breakdown{Base: 6, Final: 6}},
		{"plastic on flush", hand.Flush, []string{"plastic_sisters"},
			Breakdown{Base: 6, Final: 1.2, Penalty: -0.8}},
		{"plastic elsewhere", hand.Straight, []string{"plastic_sisters"},
			Breakdown{Base: 5, Final: 12.5, Boost: 1.5}},
		{"greedy", hand.HighCard, []string{"greedy_demon"},
			Breakdown{Base: 1, Final: 1.5, Boost: 0.5}},
		{"high card bomb", hand.HighCard, []string{"single_bomb"},
			Breakdown{Base: 1, Final: 6, Boost: 5}},
		{"point and structural items ignored", hand.Flush, []string{"gold_boost", "ghost_hand", "circus_leak", "barely_alive"},
			Breakdown{Base: 6, Final: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Category = tt.category
			assert.Equal(t, tt.want, Multiplier(tt.category, set(t, tt.ids...)))
		})
	}
}

func TestMultiplierCategoryPenalty(t *testing.T) {
	mixed := items.MixedBoost{Main: 3, Categories: []hand.Category{hand.Pair, hand.HighCard}, CategoryFactor: 0.5}

	b := Multiplier(hand.Pair, effects(mixed))
	assert.Equal(t, 3.0, b.Final)
	assert.Equal(t, 2.0, b.Boost)
	assert.Equal(t, -0.5, b.Penalty)

	b = Multiplier(hand.Flush, effects(mixed))
	assert.Equal(t, 18.0, b.Final)
	assert.Zero(t, b.Penalty)
}

func TestMultiplierRoundsHalfUp(t *testing.T) {
	// 2 * 1.2 * 1.2 * 0.98 * 0.98 = 2.765952
	s := effects(
		items.MixedBoost{Main: 1.2, Random: true, Points: 2},
		items.MixedBoost{Main: 1.2, Random: true, Points: 2},
	)
	b := Multiplier(hand.Pair, s)
	assert.Equal(t, 2.77, b.Final)
	assert.Equal(t, 0.44, b.Boost)
	assert.Equal(t, -0.04, b.Penalty)
}

func TestMultiplierDeterministic(t *testing.T) {
	s := set(t, "lucky_boost", "plastic_sisters", "half_hand_boost", "three_backstab", "greedy_demon")
	for _, c := range hand.Categories {
		assert.Equal(t, Multiplier(c, s), Multiplier(c, s))
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{14, 14},
		{1.005 + 1e-9, 1.01},
		{5.875, 5.88},
		{-0.8, -0.8},
		{2.344, 2.34},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, round2(tt.in), 1e-9, "round2(%v)", tt.in)
	}
}

func TestTableStrongestFirst(t *testing.T) {
	table := Table(set(t, "all_hand_boost"))
	require.Len(t, table, len(hand.Categories))
	assert.Equal(t, hand.StraightFlush, table[0].Category)
	assert.Equal(t, 20.0, table[0].Final)
	assert.Equal(t, hand.HighCard, table[len(table)-1].Category)
	assert.Equal(t, 2.0, table[len(table)-1].Final)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		final float64
		want  int
	}{
		// 3+3+7+7+10 = 30 points
		{"whole multiplier", "5c 5d 9s 9h W", 7, 210},
		{"rounds half up", "5c 5d 9s 9h W", 1.25, 38},
		{"rounds down", "5c 5d 9s 9h W", 1.21, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := deck.MustParseCards(tt.cards)
			assert.Equal(t, tt.want, Score(cards, Breakdown{Final: tt.final}))
		})
	}
}

func TestEvaluate(t *testing.T) {
	cards := deck.MustParseCards("5c 5d 9s 9h W")
	r := Evaluate(cards, set(t, "all_hand_boost"))
	assert.Equal(t, hand.FullHouse, r.Category)
	assert.Equal(t, 14.0, r.Breakdown.Final)
	assert.Equal(t, 30, r.Points)
	assert.Equal(t, 420, r.Score)

	assert.Equal(t, 3+3+7+7+10, BasePoints(cards))
}

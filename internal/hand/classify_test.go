package hand

import (
	"testing"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected Category
	}{
		// No wildcards
		{"high card", "3c 5d 8h Js 2c", HighCard},
		{"pair", "3c 3d 8h Js 2c", Pair},
		{"two pair", "3c 3d 8h 8s 2c", TwoPair},
		{"three of a kind", "3c 3d 3h Js 2c", ThreeOfAKind},
		{"straight low", "3c 4d 5h 6s 7c", Straight},
		{"straight through ace and two", "Jc Qd Kh As 2c", Straight},
		{"wheel", "Ac 2d 3h 4s 5c", Straight},
		{"two low is not a straight", "2c 3d 4h 5s 6c", HighCard},
		{"flush", "3h 5h 8h Jh 2h", Flush},
		{"full house", "9c 9d 9h 4s 4c", FullHouse},
		{"four of a kind", "Kc Kd Kh Ks 2c", FourOfAKind},
		{"straight flush", "8s 9s 10s Js Qs", StraightFlush},
		{"wheel flush", "Ad 2d 3d 4d 5d", StraightFlush},

		// One wildcard
		{"two pair plus wild is full house", "5c 5d 9s 9h W", FullHouse},
		{"gap filled straight", "3c 4d 5s 6h W", Straight},
		{"inside gap straight", "3c 4d 6s 7h W", Straight},
		{"pair plus wild is trips", "3c 3d 8h Js W", ThreeOfAKind},
		{"trips plus wild is quads", "Qc Qd Qh 4s W", FourOfAKind},
		{"four suited plus wild is flush", "3h 5h 9h Jh W", Flush},
		{"suited run plus wild", "3h 4h 5h 6h W", StraightFlush},
		{"singles plus wild is pair", "3c 5d 9h Js W", Pair},
		{"wild completes wheel", "Ac 2d 3h 4s W", Straight},
		{"duplicate ranks break straight", "3c 3d 4h 5s W", ThreeOfAKind},

		// Several wildcards
		{"two wild with pair is quads", "5c 5d 9s W W", FourOfAKind},
		{"two wild singles run", "3c 5d 7s W W", Straight},
		{"two wild singles spread", "3c 8d Ks W W", ThreeOfAKind},
		{"two wild suited spread", "3c 8c Kc W W", Flush},
		{"three wild", "3c Kd W W W", FourOfAKind},
		{"four wild", "Kd W W W W", StraightFlush},
		{"five wild", "W W W W W", StraightFlush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := deck.MustParseCards(tt.cards)
			require.Len(t, cards, 5)
			assert.Equal(t, tt.expected, Classify(cards), "Classify(%s)", tt.cards)
		})
	}
}

func TestClassifyWrongSizeFallsBackToHighCard(t *testing.T) {
	assert.Equal(t, HighCard, Classify(nil))
	assert.Equal(t, HighCard, Classify(deck.MustParseCards("Kc Kd Kh Ks")))
	assert.Equal(t, HighCard, Classify(deck.MustParseCards("Kc Kd Kh Ks 2c 2d")))
	assert.Equal(t, HighCard, Classify(deck.MustParseCards("W W W W")))
}

// TestClassifyMatchesSubstitution checks the wildcard rules against brute
// force: every wildcard replaced by every concrete card, best result kept.
func TestClassifyMatchesSubstitution(t *testing.T) {
	full := deck.Build(deck.Options{Wildcards: 5}, nil)
	var ranked, wild []deck.Card
	for _, c := range full {
		if c.Wild {
			wild = append(wild, c)
		} else {
			ranked = append(ranked, c)
		}
	}

	rng := randutil.New(2024)
	hands := 300
	maxWild := 2
	if !testing.Short() {
		hands = 400
	}

	for i := 0; i < hands; i++ {
		w := rng.IntN(maxWild + 1)
		pool := append([]deck.Card(nil), ranked...)
		deck.Shuffle(pool, rng)
		cards := append(pool[:5-w:5-w], wild[:w]...)

		got := Classify(cards)
		want := bestSubstitution(cards, ranked)
		require.Equal(t, want, got, "hand %v", cards)
	}
}

func TestClassifyNeverBelowConcrete(t *testing.T) {
	rng := randutil.New(11)
	pool := deck.Build(deck.Options{}, nil)
	for i := 0; i < 500; i++ {
		deck.Shuffle(pool, rng)
		hand := append([]deck.Card(nil), pool[:5]...)
		base := Classify(hand)
		for j, c := range hand {
			if c.Wild {
				continue
			}
			swapped := append([]deck.Card(nil), hand...)
			swapped[j] = deck.NewWildcard(9)
			assert.GreaterOrEqual(t, Classify(swapped), base, "wildcard for %s in %v", c, hand)
		}
	}
}

func bestSubstitution(cards []deck.Card, concrete []deck.Card) Category {
	for i, c := range cards {
		if !c.Wild {
			continue
		}
		best := HighCard
		for _, sub := range concrete {
			next := append([]deck.Card(nil), cards...)
			next[i] = sub
			if got := bestSubstitution(next, concrete); got > best {
				best = got
			}
			if best == StraightFlush {
				break
			}
		}
		return best
	}
	return Classify(cards)
}

func TestCategoryOrderingAndMultipliers(t *testing.T) {
	prev := 0.0
	for _, c := range Categories {
		assert.Greater(t, c.BaseMultiplier(), prev, c.String())
		prev = c.BaseMultiplier()
	}
	assert.Equal(t, 7.0, FullHouse.BaseMultiplier())
	assert.Equal(t, 10.0, StraightFlush.BaseMultiplier())
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		parsed, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)

		parsed, err = ParseCategory(snake(c.String()))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := ParseCategory("Royal Flush")
	assert.Error(t, err)
}

package deck

import (
	"slices"

	"github.com/lox/wildpoker/internal/randutil"
)

// DefaultWildcards is the number of wildcards in a deck with no extra
// wildcard effects.
const DefaultWildcards = 2

// Target selects which cards a point boost applies to.
type Target struct {
	All   bool   `json:"all,omitempty"`
	Wild  bool   `json:"joker,omitempty"`
	Ranks []Rank `json:"ranks,omitempty"`
}

// Matches reports whether the target covers c. Wildcards only match "all"
// and wildcard targets, never rank lists.
func (t Target) Matches(c Card) bool {
	if t.All {
		return true
	}
	if c.Wild {
		return t.Wild
	}
	return slices.Contains(t.Ranks, c.Rank)
}

// PointBoost is a flat point adjustment applied to every matching card.
type PointBoost struct {
	Target Target
	Value  int
}

// Options describes everything owned items contribute to a deck build.
type Options struct {
	Wildcards int
	Boosts    []PointBoost
	// Penalties are flat subtractions each rolled independently per ranked
	// card with probability 1/2.
	Penalties []int
}

// Build creates one card per suit and rank plus the wildcards, with final
// point values resolved from opts. Penalty rolls draw from rng once per card
// per penalty; rng may be nil when opts has no penalties.
func Build(opts Options, rng randutil.Source) []Card {
	wildcards := opts.Wildcards
	if wildcards <= 0 {
		wildcards = DefaultWildcards
	}

	cards := make([]Card, 0, len(Suits)*len(Ranks)+wildcards)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := NewCard(suit, rank)
			points := c.BasePoint + boostFor(c, opts.Boosts)
			for _, p := range opts.Penalties {
				if rng.IntN(2) == 1 {
					points -= p
				}
			}
			cards = append(cards, finalise(c, points))
		}
	}

	for n := 1; n <= wildcards; n++ {
		c := NewWildcard(n)
		cards = append(cards, finalise(c, c.BasePoint+boostFor(c, opts.Boosts)))
	}

	return cards
}

func boostFor(c Card, boosts []PointBoost) int {
	total := 0
	for _, b := range boosts {
		if b.Target.Matches(c) {
			total += b.Value
		}
	}
	return total
}

// finalise clamps the point value to at least 1 and records the delta.
func finalise(c Card, points int) Card {
	c.FinalPoint = max(1, points)
	c.PointBoost = c.FinalPoint - c.BasePoint
	return c
}

// Shuffle permutes cards in place with a Fisher-Yates pass.
func Shuffle(cards []Card, rng randutil.Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal splits the first n cards off deck. The returned hand is a copy, so
// later edits to either slice do not alias.
func Deal(cards []Card, n int) (hand, rest []Card) {
	n = min(n, len(cards))
	hand = slices.Clone(cards[:n])
	return hand, cards[n:]
}

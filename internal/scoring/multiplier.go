// Package scoring folds owned item effects into a hand category's
// multiplier and turns a confirmed selection into a score.
package scoring

import (
	"math"
	"slices"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/items"
)

// PlasticFlushFactor is what a plastic effect leaves of the Flush multiplier.
const PlasticFlushFactor = 0.2

// Breakdown is the multiplier of one category under an item set. Boost and
// Penalty are display deltas from 1 and never feed back into arithmetic.
type Breakdown struct {
	Category hand.Category `json:"category"`
	Base     float64       `json:"base"`
	Final    float64       `json:"final"`
	Boost    float64       `json:"boost"`
	Penalty  float64       `json:"penalty"`
}

// Multiplier computes the breakdown for category c. Effects are folded in
// set order so float rounding matches the saved game exactly.
func Multiplier(c hand.Category, owned items.Set) Breakdown {
	base := c.BaseMultiplier()
	boost, penalty := 1.0, 1.0

	for _, it := range owned {
		switch e := it.Effect.(type) {
		case items.PairMultiplierBoost:
			if c == hand.Pair {
				base += e.Value
			}
		case items.MultiplierBoost:
			if e.Applies(c) {
				boost *= e.Factor
			}
		case items.MixedBoost:
			if len(e.Categories) > 0 {
				if slices.Contains(e.Categories, c) {
					penalty *= e.CategoryFactor
				}
			} else if e.Points != 0 {
				penalty *= 1 - float64(e.Points)/100
			}
			boost *= e.Main
		case items.MixedHandBoost:
			if f, ok := e.Factors[c]; ok {
				boost *= f
			}
		case items.PlasticBoost:
			if c == hand.Flush {
				penalty *= PlasticFlushFactor
			} else {
				boost *= e.Factor
			}
		case items.GreedyBoost:
			boost *= e.Factor
		}
	}

	return Breakdown{
		Category: c,
		Base:     base,
		Final:    round2(base * boost * penalty),
		Boost:    round2(boost - 1),
		Penalty:  round2(penalty - 1),
	}
}

// Table returns the breakdown of every category, strongest first.
func Table(owned items.Set) []Breakdown {
	out := make([]Breakdown, 0, len(hand.Categories))
	for i := len(hand.Categories) - 1; i >= 0; i-- {
		out = append(out, Multiplier(hand.Categories[i], owned))
	}
	return out
}

// Points sums the final point values of cards.
func Points(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += c.FinalPoint
	}
	return total
}

// BasePoints sums the unmodified point values of cards.
func BasePoints(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += c.BasePoint
	}
	return total
}

// Score is the points of cards times the final multiplier, rounded half up.
func Score(cards []deck.Card, b Breakdown) int {
	return roundHalfUp(float64(Points(cards)) * b.Final)
}

// Result is a scored five-card selection.
type Result struct {
	Category  hand.Category `json:"category"`
	Breakdown Breakdown     `json:"multiplier"`
	Points    int           `json:"points"`
	Score     int           `json:"score"`
}

// Evaluate classifies cards and scores them under owned.
func Evaluate(cards []deck.Card, owned items.Set) Result {
	c := hand.Classify(cards)
	b := Multiplier(c, owned)
	return Result{
		Category:  c,
		Breakdown: b,
		Points:    Points(cards),
		Score:     Score(cards, b),
	}
}

// round2 rounds to two decimals with ties toward positive infinity.
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

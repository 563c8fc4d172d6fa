// Package items defines the closed set of item effects, the owned-item
// collection the scoring engine folds over, and the static template catalog.
package items

import (
	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
)

// Kind is the wire tag of an effect.
type Kind string

const (
	KindPointBoost          Kind = "point_boost"
	KindMultiplierBoost     Kind = "multiplier_boost"
	KindPairMultiplierBoost Kind = "pair_multiplier_boost"
	KindMixedBoost          Kind = "mixed_boost"
	KindMixedHandBoost      Kind = "mixed_hand_boost"
	KindPlasticBoost        Kind = "plastic_boost"
	KindGreedyBoost         Kind = "greedy_boost"
	KindHandSizeBoost       Kind = "hand_size_boost"
	KindSubroundBoost       Kind = "subround_boost"
	KindJokerBoost          Kind = "joker_boost"
	KindSlotBoost           Kind = "slot_boost"
	KindScoreGrant          Kind = "score_grant"
)

// Effect is one of the concrete effect types below. The set is closed.
type Effect interface {
	Kind() Kind
	effect()
}

// PointBoost adds Value points to every card its target matches.
type PointBoost struct {
	Target deck.Target
	Value  int
}

// MultiplierBoost multiplies the boost of one category, or of all of them.
type MultiplierBoost struct {
	All      bool
	Category hand.Category
	Factor   float64
}

// Applies reports whether the boost covers c.
func (m MultiplierBoost) Applies(c hand.Category) bool {
	return m.All || m.Category == c
}

// PairMultiplierBoost adds flatly to the Pair base multiplier.
type PairMultiplierBoost struct {
	Value float64
}

// MixedBoost trades a multiplicative boost for a penalty. The penalty is
// either flat points (rolled per card at deal time when Random is set, and
// read as a percentage cut by the composer) or a category list scaled by
// CategoryFactor.
type MixedBoost struct {
	Main           float64
	Random         bool
	Points         int
	Categories     []hand.Category
	CategoryFactor float64
}

// MixedHandBoost scales each listed category by its own factor.
type MixedHandBoost struct {
	Factors map[hand.Category]float64
}

// PlasticBoost cuts Flush to a fifth and boosts every other category.
type PlasticBoost struct {
	Factor float64
}

// GreedyBoost is a flat boost that also extends the game to more rounds.
type GreedyBoost struct {
	Factor float64
}

// HandSizeBoost deals extra cards.
type HandSizeBoost struct {
	Value int
}

// SubroundBoost adds a subround to every round.
type SubroundBoost struct {
	Value int
}

// JokerBoost adds one wildcard to the deck. Value is carried from the
// catalog but the deck never holds more than one extra wildcard.
type JokerBoost struct {
	Value int
}

// SlotBoost raises the owned-item capacity when bought.
type SlotBoost struct {
	Value int
}

// ScoreGrant is a one-time item that credits Value to the total score and
// occupies no slot.
type ScoreGrant struct {
	Value int
}

func (PointBoost) Kind() Kind          { return KindPointBoost }
func (MultiplierBoost) Kind() Kind     { return KindMultiplierBoost }
func (PairMultiplierBoost) Kind() Kind { return KindPairMultiplierBoost }
func (MixedBoost) Kind() Kind          { return KindMixedBoost }
func (MixedHandBoost) Kind() Kind      { return KindMixedHandBoost }
func (PlasticBoost) Kind() Kind        { return KindPlasticBoost }
func (GreedyBoost) Kind() Kind         { return KindGreedyBoost }
func (HandSizeBoost) Kind() Kind       { return KindHandSizeBoost }
func (SubroundBoost) Kind() Kind       { return KindSubroundBoost }
func (JokerBoost) Kind() Kind          { return KindJokerBoost }
func (SlotBoost) Kind() Kind           { return KindSlotBoost }
func (ScoreGrant) Kind() Kind          { return KindScoreGrant }

func (PointBoost) effect()          {}
func (MultiplierBoost) effect()     {}
func (PairMultiplierBoost) effect() {}
func (MixedBoost) effect()          {}
func (MixedHandBoost) effect()      {}
func (PlasticBoost) effect()        {}
func (GreedyBoost) effect()         {}
func (HandSizeBoost) effect()       {}
func (SubroundBoost) effect()       {}
func (JokerBoost) effect()          {}
func (SlotBoost) effect()           {}
func (ScoreGrant) effect()          {}

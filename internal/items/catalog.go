package items

import (
	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
)

var faceAndTop = []deck.Rank{deck.Ace, deck.Two, deck.King, deck.Queen, deck.Jack}

var catalog = []Template{
	// Point boosts
	{ID: "joker_point_boost", Name: "Fat Clown", Desc: "Wildcard points +5 (10 to 15)", Icon: "fa-star",
		Effect: PointBoost{Target: deck.Target{Wild: true}, Value: 5}, BasePrice: 50},
	{ID: "high_card_boost", Name: "Inflation", Desc: "A/2/K/Q/J points +3", Icon: "fa-arrow-up",
		Effect: PointBoost{Target: deck.Target{Ranks: faceAndTop}, Value: 3}, BasePrice: 180},
	{ID: "all_card_boost", Name: "Bronze Amplifier", Desc: "All card points +1", Icon: "fa-plus",
		Effect: PointBoost{Target: deck.Target{All: true}, Value: 1}, BasePrice: 90},

	// Multiplier boosts
	{ID: "straight_flush_boost", Name: "Royal Road", Desc: "Straight Flush multiplier x2 (10 to 20)", Icon: "fa-trophy",
		Effect: MultiplierBoost{Category: hand.StraightFlush, Factor: 2}, BasePrice: 666},
	{ID: "four_of_a_kind_boost", Name: "Quads Rising", Desc: "Four of a Kind multiplier x1.5 (8 to 12)", Icon: "fa-dice-four",
		Effect: MultiplierBoost{Category: hand.FourOfAKind, Factor: 1.5}, BasePrice: 200},
	{ID: "all_hand_boost", Name: "Full Firepower", Desc: "All category multipliers x2", Icon: "fa-magic",
		Effect: MultiplierBoost{All: true, Factor: 2}, BasePrice: 1000},
	{ID: "half_hand_boost", Name: "Cannon", Desc: "All category multipliers x1.5", Icon: "fa-magic",
		Effect: MultiplierBoost{All: true, Factor: 1.5}, BasePrice: 500},

	// Double-edged
	{ID: "lucky_boost", Name: "Melon and Sesame", Desc: "All categories +20%, but each card may lose 2 points", Icon: "fa-leaf",
		Effect: MixedBoost{Main: 1.2, Random: true, Points: 2}, BasePrice: 90},

	// Hand size
	{ID: "ghost_hand2", Name: "Ghost Hand II", Desc: "Hand size +2", Icon: "fa-hand-rock",
		Effect: HandSizeBoost{Value: 2}, BasePrice: 2888},
	{ID: "ghost_hand", Name: "Ghost Hand", Desc: "Hand size +1 (8 to 9)", Icon: "fa-hand-rock",
		Effect: HandSizeBoost{Value: 1}, BasePrice: 888},
	{ID: "pair_demon", Name: "Pair Demon", Desc: "Pair base multiplier +2 (2 to 4)", Icon: "fa-dragon",
		Effect: PairMultiplierBoost{Value: 2}, BasePrice: 300},

	{ID: "gold_boost", Name: "Gold Amplifier", Desc: "All card points +5", Icon: "fa-coins",
		Effect: PointBoost{Target: deck.Target{All: true}, Value: 5}, BasePrice: 550},
	{ID: "iron_boost", Name: "Iron Amplifier", Desc: "All card points +2", Icon: "fa-mountain",
		Effect: PointBoost{Target: deck.Target{All: true}, Value: 2}, BasePrice: 230},
	{ID: "diamond_boost", Name: "Diamond Amplifier", Desc: "All card points +10", Icon: "fa-gem",
		Effect: PointBoost{Target: deck.Target{All: true}, Value: 10}, BasePrice: 1550},
	{ID: "single_bomb", Name: "High Card Bomb", Desc: "High Card multiplier x6 (1 to 6)", Icon: "fa-bomb",
		Effect: MultiplierBoost{Category: hand.HighCard, Factor: 6}, BasePrice: 1000},

	{ID: "odd_boost", Name: "Odd Training", Desc: "3/5/7/9 points +1", Icon: "fa-sort-numeric-asc",
		Effect: PointBoost{Target: deck.Target{Ranks: []deck.Rank{deck.Three, deck.Five, deck.Seven, deck.Nine}}, Value: 1}, BasePrice: 100},
	{ID: "even_boost", Name: "Even Training", Desc: "4/6/8/10/2 points +2", Icon: "fa-sort-numeric-desc",
		Effect: PointBoost{Target: deck.Target{Ranks: []deck.Rank{deck.Four, deck.Six, deck.Eight, deck.Ten, deck.Two}}, Value: 2}, BasePrice: 120},
	{ID: "prime_boost", Name: "Prime Training", Desc: "2/3/5/7 points +3", Icon: "fa-cube",
		Effect: PointBoost{Target: deck.Target{Ranks: []deck.Rank{deck.Two, deck.Three, deck.Five, deck.Seven}}, Value: 3}, BasePrice: 200},

	{ID: "three_backstab", Name: "Topsy Turvy", Desc: "Three of a Kind x2, Four of a Kind /2", Icon: "fa-chain-broken",
		Effect: MixedHandBoost{Factors: map[hand.Category]float64{hand.ThreeOfAKind: 2, hand.FourOfAKind: 0.5}}, BasePrice: 330},
	{ID: "barely_alive", Name: "Barely Alive", Desc: "Subrounds per round 3 to 4", Icon: "fa-heartbeat",
		Effect: SubroundBoost{Value: 1}, BasePrice: 555},
	{ID: "circus_leak", Name: "Circus Escape", Desc: "Wildcards +1", Icon: "fa-smile-o",
		Effect: JokerBoost{Value: 1}, BasePrice: 300},
	{ID: "circus_leak2", Name: "Circus Manhunt", Desc: "Wildcards +1, does not stack", Icon: "fa-smile-o",
		Effect: JokerBoost{Value: 2}, BasePrice: 1200},
	{ID: "crazy_pairs", Name: "Pair Elbow", Desc: "Two Pair x2, Pair /2", Icon: "fa-retweet",
		Effect: MixedHandBoost{Factors: map[hand.Category]float64{hand.TwoPair: 2, hand.Pair: 0.5}}, BasePrice: 350},
	{ID: "sixty_six_straight", Name: "Smooth Sailing", Desc: "Straight multiplier x6", Icon: "fa-sort-amount-desc",
		Effect: MultiplierBoost{Category: hand.Straight, Factor: 6}, BasePrice: 1666},
	{ID: "plastic_sisters", Name: "Plastic Sisters", Desc: "Flush multiplier /5, all others x2.5", Icon: "fa-venus",
		Effect: PlasticBoost{Factor: 2.5}, BasePrice: 700},

	// Structural
	{ID: "greedy_demon", Name: "Greedy Demon", Desc: "All categories x1.5, total rounds 8 to 12", Icon: "fa-fire",
		Effect: GreedyBoost{Factor: 1.5}, BasePrice: 1888},
	{ID: "break_threshold", Name: "Break Threshold", Desc: "Item slots +2", Icon: "fa-unlock",
		Effect: SlotBoost{Value: 2}, BasePrice: 800},

	// One-time grants
	{ID: "wife_fund", Name: "Wife Fund", Desc: "One time: +500 score", Icon: "fa-gift",
		Effect: ScoreGrant{Value: 500}},
	{ID: "coffin_fund", Name: "Coffin Fund", Desc: "One time: +1000 score", Icon: "fa-archive",
		Effect: ScoreGrant{Value: 1000}},
}

// Catalog returns the template list in catalog order. The slice is a copy.
func Catalog() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a template by id.
func Lookup(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

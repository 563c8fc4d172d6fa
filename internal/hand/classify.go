package hand

import (
	"slices"

	"github.com/lox/wildpoker/internal/deck"
)

// Size is the number of cards a classified hand must contain.
const Size = 5

// wheel is the ace-low straight, evaluated as its own fixed window since the
// ace and two sit at the top of the ordinal sequence.
var wheel = [...]deck.Rank{deck.Ace, deck.Two, deck.Three, deck.Four, deck.Five}

// Classify returns the highest category the cards can form, spending
// wildcards wherever they complete a requirement. Anything other than exactly
// five cards classifies as HighCard; this is a defined fallback, not an error.
func Classify(cards []deck.Card) Category {
	if len(cards) != Size {
		return HighCard
	}

	p := profile(cards)
	if p.wild == Size {
		return StraightFlush
	}

	top := p.rankCounts[0]
	switch {
	case p.flush() && p.straight():
		return StraightFlush
	case top+p.wild >= 4:
		return FourOfAKind
	case p.fullHouse():
		return FullHouse
	case p.flush():
		return Flush
	case p.straight():
		return Straight
	case top+p.wild >= 3:
		return ThreeOfAKind
	case p.twoPair():
		return TwoPair
	case top+p.wild >= 2:
		return Pair
	default:
		return HighCard
	}
}

// handProfile is the multiset view of the ranked cards plus the wildcard
// budget every check may spend.
type handProfile struct {
	wild       int
	ranks      map[deck.Rank]bool
	rankCounts []int // descending
	suitCounts []int // descending
}

func profile(cards []deck.Card) handProfile {
	byRank := make(map[deck.Rank]int)
	bySuit := make(map[deck.Suit]int)
	wild := 0
	for _, c := range cards {
		if c.Wild {
			wild++
			continue
		}
		byRank[c.Rank]++
		bySuit[c.Suit]++
	}

	p := handProfile{
		wild:       wild,
		ranks:      make(map[deck.Rank]bool, len(byRank)),
		rankCounts: descending(byRank),
		suitCounts: descending(bySuit),
	}
	for r := range byRank {
		p.ranks[r] = true
	}
	return p
}

// descending returns the counts sorted high to low, padded with a zero so
// callers can index [0] and [1] unconditionally.
func descending[K comparable](counts map[K]int) []int {
	out := make([]int, 0, len(counts)+1)
	for _, n := range counts {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b int) int { return b - a })
	for len(out) < 2 {
		out = append(out, 0)
	}
	return out
}

func (p handProfile) flush() bool {
	return p.suitCounts[0]+p.wild >= Size
}

// straight slides a five-rank window across the ordinal sequence, then tries
// the wheel. A window is reachable when its missing ranks fit in the budget.
func (p handProfile) straight() bool {
	last := len(deck.Ranks) - Size
	for start := 0; start <= last; start++ {
		if p.missing(deck.Ranks[start:start+Size]) <= p.wild {
			return true
		}
	}
	return p.missing(wheel[:]) <= p.wild
}

func (p handProfile) missing(window []deck.Rank) int {
	n := 0
	for _, r := range window {
		if !p.ranks[r] {
			n++
		}
	}
	return n
}

// distinct is the number of different ranks among the ranked cards.
func (p handProfile) distinct() int {
	return len(p.ranks)
}

func (p handProfile) fullHouse() bool {
	a, b := p.rankCounts[0], p.rankCounts[1]
	switch {
	case a == 3 && b == 2:
		return true
	case a == 2 && b == 2 && p.wild >= 1:
		return true
	case a == 3 && b == 1 && p.wild >= 1:
		return true
	case a == 2 && p.wild >= 2:
		return true
	case p.distinct() >= 4 && p.wild >= 3:
		return true
	}
	return false
}

func (p handProfile) twoPair() bool {
	a, b := p.rankCounts[0], p.rankCounts[1]
	switch {
	case a == 2 && b == 2:
		return true
	case a == 2 && p.wild >= 1:
		return true
	case p.wild >= 2:
		return true
	}
	return false
}

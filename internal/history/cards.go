package history

import (
	"strings"

	"github.com/lox/wildpoker/internal/deck"
)

var suitLetters = map[deck.Suit]string{
	deck.Clubs:    "c",
	deck.Diamonds: "d",
	deck.Hearts:   "h",
	deck.Spades:   "s",
}

// FormatCard renders a card in the notation deck.ParseCard accepts, with
// "T" for ten and "W" for a wildcard.
func FormatCard(c deck.Card) string {
	if c.Wild {
		return "W"
	}
	rank := c.Rank.String()
	if c.Rank == deck.Ten {
		rank = "T"
	}
	return rank + suitLetters[c.Suit]
}

// FormatCards renders cards with FormatCard.
func FormatCards(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = FormatCard(c)
	}
	return out
}

// ParseCards is the inverse of FormatCards. Point boosts are not recorded,
// so parsed cards carry base points only.
func ParseCards(cards []string) ([]deck.Card, error) {
	return deck.ParseCards(strings.Join(cards, " "))
}

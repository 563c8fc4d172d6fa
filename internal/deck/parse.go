package deck

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseCard parses a single card such as "5c", "10h", "Th" or "W". A parsed
// wildcard is numbered 1; use ParseCards to number several.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}
	if rank, err := ParseRank(s); err == nil && rank == Joker {
		return NewWildcard(1), nil
	}

	last, size := utf8.DecodeLastRuneInString(s)
	suit, err := parseSuit(last)
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	rank, err := ParseRank(s[:len(s)-size])
	if err != nil || rank == Joker {
		return Card{}, fmt.Errorf("card %q: invalid rank", s)
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses whitespace or comma separated cards. Wildcards are
// numbered in the order they appear.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	wild := 0
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		if c.Wild {
			wild++
			c = NewWildcard(wild)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on bad input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 'c', 'C', '♣':
		return Clubs, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 's', 'S', '♠':
		return Spades, nil
	}
	return 0, fmt.Errorf("unknown suit %q", string(r))
}

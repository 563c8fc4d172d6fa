package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. Wildcards carry the JokerSuit sentinel.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
	JokerSuit
)

// Suits lists the four playable suits in deck order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

var suitNames = [...]string{"club", "diamond", "heart", "spade", "joker"}

// String returns the suit name used in card ids and persisted state.
func (s Suit) String() string {
	if s < Clubs || s > JokerSuit {
		return "?"
	}
	return suitNames[s]
}

// Symbol returns the display glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case JokerSuit:
		return "🃏"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) MarshalText() ([]byte, error) {
	if s < Clubs || s > JokerSuit {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	for i, name := range suitNames {
		if string(b) == name {
			*s = Suit(i)
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", string(b))
}

// Rank is a card rank. The numeric value is the rank's ordinal position in
// the game's fixed sequence 3,4,...,K,A,2, which is also what straights are
// measured against.
type Rank int

const (
	Three Rank = iota
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two
	Joker
)

// Ranks lists the thirteen playable ranks in ordinal order.
var Ranks = [...]Rank{Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace, Two}

var rankNames = [...]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2", "Joker"}

// WildcardBasePoint is the base point value of every wildcard.
const WildcardBasePoint = 10

// String returns the rank label ("10", "J", "Joker", ...).
func (r Rank) String() string {
	if r < Three || r > Joker {
		return "?"
	}
	return rankNames[r]
}

// Ordinal returns the position of the rank in the 13-rank sequence.
func (r Rank) Ordinal() int {
	return int(r)
}

// BasePoint returns the unmodified point value: 1 for a three up to 13 for
// a two, 10 for a wildcard.
func (r Rank) BasePoint() int {
	if r == Joker {
		return WildcardBasePoint
	}
	return int(r) + 1
}

func (r Rank) MarshalText() ([]byte, error) {
	if r < Three || r > Joker {
		return nil, fmt.Errorf("invalid rank %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	rank, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = rank
	return nil
}

// ParseRank accepts the rank labels plus "T" for ten and "W" for a wildcard.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "T":
		return Ten, nil
	case "W", "JK", "JOKER":
		return Joker, nil
	}
	for i, name := range rankNames {
		if strings.EqualFold(s, name) {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// Card is a dealt card. Point fields are fixed at build time; a changed item
// set produces new cards rather than mutating these.
type Card struct {
	ID         string `json:"id"`
	Suit       Suit   `json:"suit"`
	Rank       Rank   `json:"rank"`
	Wild       bool   `json:"isJoker"`
	BasePoint  int    `json:"basePoint"`
	FinalPoint int    `json:"finalPoint"`
	PointBoost int    `json:"pointBoost"`
}

// NewCard creates an unmodified ranked card.
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		ID:         suit.String() + "-" + rank.String(),
		Suit:       suit,
		Rank:       rank,
		BasePoint:  rank.BasePoint(),
		FinalPoint: rank.BasePoint(),
	}
}

// NewWildcard creates the n-th wildcard (1-based).
func NewWildcard(n int) Card {
	return Card{
		ID:         fmt.Sprintf("Joker%d", n),
		Suit:       JokerSuit,
		Rank:       Joker,
		Wild:       true,
		BasePoint:  WildcardBasePoint,
		FinalPoint: WildcardBasePoint,
	}
}

// String returns a compact label such as "10♥" or "🃏".
func (c Card) String() string {
	if c.Wild {
		return JokerSuit.Symbol()
	}
	return c.Rank.String() + c.Suit.Symbol()
}

// IsRed returns true if the card is red.
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

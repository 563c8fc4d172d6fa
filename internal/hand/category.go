// Package hand classifies five-card selections into poker-style categories,
// treating wildcards as free substitutes for any rank or suit.
package hand

import (
	"fmt"
	"strings"
)

// Category enumerates hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Categories lists every category from weakest to strongest.
var Categories = [...]Category{HighCard, Pair, TwoPair, ThreeOfAKind, Straight, Flush, FullHouse, FourOfAKind, StraightFlush}

var categoryNames = [...]string{
	"High Card",
	"Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

var baseMultipliers = [...]float64{1, 2, 3, 4, 5, 6, 7, 8, 10}

// String returns the display name of the category.
func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// BaseMultiplier returns the multiplier before any item effects.
func (c Category) BaseMultiplier() float64 {
	if int(c) >= len(baseMultipliers) {
		return 1
	}
	return baseMultipliers[c]
}

// Valid reports whether c is one of the nine categories.
func (c Category) Valid() bool {
	return int(c) < len(categoryNames)
}

// ParseCategory accepts a display name or its snake_case form.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if s == name || s == snake(name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hand category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid hand category %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func snake(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

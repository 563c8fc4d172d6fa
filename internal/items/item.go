package items

import (
	"slices"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/randutil"
)

// Template is a catalog entry. Offers and owned items are stamped from it.
type Template struct {
	ID        string
	Name      string
	Desc      string
	Icon      string
	Effect    Effect
	BasePrice int
}

// OneTime reports whether the template grants its effect once on purchase
// instead of occupying an item slot.
func (t Template) OneTime() bool {
	_, ok := t.Effect.(ScoreGrant)
	return ok
}

// Offer is a template on sale in the shop at a rolled price.
type Offer struct {
	Template
	Price     int
	SellPrice int
}

// Item returns the owned form of the offer.
func (o Offer) Item() Item {
	return Item{
		ID:        o.ID,
		Name:      o.Name,
		Desc:      o.Desc,
		Icon:      o.Icon,
		Effect:    o.Effect,
		BuyPrice:  o.Price,
		SellPrice: o.SellPrice,
	}
}

// Item is an owned effect instance with the prices it was traded at.
type Item struct {
	ID        string
	Name      string
	Desc      string
	Icon      string
	Effect    Effect
	BuyPrice  int
	SellPrice int
}

// Set is the owned items in purchase order. The scoring fold depends on
// this order, so it is never sorted.
type Set []Item

// Index returns the position of the item with id, or -1.
func (s Set) Index(id string) int {
	return slices.IndexFunc(s, func(it Item) bool { return it.ID == id })
}

// Has reports whether an item with id is owned.
func (s Set) Has(id string) bool {
	return s.Index(id) >= 0
}

// HasKind reports whether any owned item carries an effect of kind k.
func (s Set) HasKind(k Kind) bool {
	return slices.ContainsFunc(s, func(it Item) bool { return it.Effect != nil && it.Effect.Kind() == k })
}

// Without returns a copy of s with the item at i removed.
func (s Set) Without(i int) Set {
	out := make(Set, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// HandSizeBonus sums every hand size effect.
func (s Set) HandSizeBonus() int {
	n := 0
	for _, it := range s {
		if e, ok := it.Effect.(HandSizeBoost); ok {
			n += e.Value
		}
	}
	return n
}

// Wildcards returns the wildcard count for a deck built from s. Any owned
// wildcard effect grants exactly one extra wildcard, whatever its value.
func (s Set) Wildcards() int {
	if s.HasKind(KindJokerBoost) {
		return deck.DefaultWildcards + 1
	}
	return deck.DefaultWildcards
}

// ExtraSubrounds returns the per-round subround bonus. Subround effects do
// not stack.
func (s Set) ExtraSubrounds() int {
	extra := 0
	for _, it := range s {
		if e, ok := it.Effect.(SubroundBoost); ok {
			extra = max(extra, e.Value)
		}
	}
	return extra
}

// DeckOptions translates owned effects into deck build options.
func (s Set) DeckOptions() deck.Options {
	opts := deck.Options{Wildcards: s.Wildcards()}
	for _, it := range s {
		switch e := it.Effect.(type) {
		case PointBoost:
			opts.Boosts = append(opts.Boosts, deck.PointBoost{Target: e.Target, Value: e.Value})
		case MixedBoost:
			if e.Random && e.Points != 0 {
				opts.Penalties = append(opts.Penalties, e.Points)
			}
		}
	}
	return opts
}

// BuildDeck builds a deck reflecting every owned effect.
func BuildDeck(s Set, rng randutil.Source) []deck.Card {
	return deck.Build(s.DeckOptions(), rng)
}

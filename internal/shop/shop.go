// Package shop rolls the item offers the player can buy between hands.
package shop

import (
	"math"
	"slices"

	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/randutil"
)

const (
	minPriceFactor = 0.8
	priceSpread    = 0.4
)

// Price rolls a price uniformly within 20% either side of base, rounded to
// the nearest point.
func Price(base int, rng randutil.Source) int {
	factor := minPriceFactor + rng.Float64()*priceSpread
	return int(math.Floor(float64(base)*factor + 0.5))
}

// SellPrice is half the paid price, rounded down.
func SellPrice(price int) int {
	return price / 2
}

// Sample draws n distinct templates uniformly at random and prices them.
// Fewer than n offers are returned when the catalog is smaller than n.
func Sample(templates []items.Template, n int, rng randutil.Source) []items.Offer {
	pool := slices.Clone(templates)
	n = max(0, min(n, len(pool)))

	// Partial Fisher-Yates: only the first n slots need settling.
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	offers := make([]items.Offer, n)
	for i, t := range pool[:n] {
		price := Price(t.BasePrice, rng)
		offers[i] = items.Offer{Template: t, Price: price, SellPrice: SellPrice(price)}
	}
	return offers
}

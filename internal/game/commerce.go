package game

import (
	"slices"

	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/shop"
)

// RefreshShop rolls a new set of offers.
func (e *Engine) RefreshShop(s *State) error {
	if s.GameOver {
		return invalid(CodeGameOver, "the game is over")
	}
	s.ShopRefreshes++
	s.Offers = shop.Sample(e.catalog, e.rules.ShopSize, e.rng)

	e.logger.Debug("Shop refreshed", "count", s.ShopRefreshes, "offers", len(s.Offers))
	e.publish(ShopRefreshedEvent{Offers: slices.Clone(s.Offers), Count: s.ShopRefreshes, timestamp: e.clock.Now()})
	return nil
}

// Buy purchases the offer with id. Checks run in a fixed order (funds,
// ownership, capacity) and nothing changes unless all of them pass.
func (e *Engine) Buy(s *State, id string) (items.Item, error) {
	if s.GameOver {
		return items.Item{}, invalid(CodeGameOver, "the game is over")
	}
	i := slices.IndexFunc(s.Offers, func(o items.Offer) bool { return o.ID == id })
	if i < 0 {
		return items.Item{}, invalid(CodeUnknownItem, "%s is not on offer", id)
	}
	offer := s.Offers[i]

	if s.TotalScore < offer.Price {
		return items.Item{}, invalid(CodeInsufficientScore, "%s costs %d but only %d is available", offer.Name, offer.Price, s.TotalScore)
	}
	oneTime := offer.OneTime()
	switch {
	case oneTime && s.HasOneTime(id):
		return items.Item{}, invalid(CodeOneTimeRepurchase, "%s can only be bought once", offer.Name)
	case !oneTime && s.Owned.Has(id):
		return items.Item{}, invalid(CodeAlreadyOwned, "%s is already owned", offer.Name)
	case !oneTime && len(s.Owned) >= e.Capacity(s):
		return items.Item{}, invalid(CodeSlotsFull, "all %d item slots are full", e.Capacity(s))
	}

	item := offer.Item()
	s.TotalScore -= offer.Price
	if grant, ok := item.Effect.(items.ScoreGrant); ok {
		s.OneTime = append(slices.Clone(s.OneTime), id)
		s.TotalScore += grant.Value
	} else {
		s.MaxOwned = e.Capacity(s)
		s.Owned = append(slices.Clone(s.Owned), item)
		s.OwnedCount = len(s.Owned)
		if slots, ok := item.Effect.(items.SlotBoost); ok {
			s.MaxOwned += slots.Value
		}
		e.itemsChanged(s)
	}

	e.logger.Debug("Item bought", "item", id, "price", offer.Price, "total", s.TotalScore)
	e.publish(ItemBoughtEvent{Item: item, Price: offer.Price, OneTime: oneTime, TotalScore: s.TotalScore, timestamp: e.clock.Now()})
	return item, nil
}

// Sell returns the owned item with id for its sell price.
func (e *Engine) Sell(s *State, id string) (items.Item, error) {
	if s.GameOver {
		return items.Item{}, invalid(CodeGameOver, "the game is over")
	}
	i := s.Owned.Index(id)
	if i < 0 {
		return items.Item{}, invalid(CodeUnknownItem, "%s is not owned", id)
	}
	item := s.Owned[i]
	remaining := s.Owned.Without(i)
	if err := e.checkSellable(s, item, remaining); err != nil {
		return items.Item{}, err
	}

	s.MaxOwned = e.Capacity(s)
	s.TotalScore += item.SellPrice
	s.Owned = remaining
	s.OwnedCount = len(s.Owned)
	if slots, ok := item.Effect.(items.SlotBoost); ok {
		s.MaxOwned -= slots.Value
	}
	e.itemsChanged(s)

	e.logger.Debug("Item sold", "item", id, "price", item.SellPrice, "total", s.TotalScore)
	e.publish(ItemSoldEvent{Item: item, TotalScore: s.TotalScore, timestamp: e.clock.Now()})
	return item, nil
}

// checkSellable refuses sales that would leave the game in a position the
// remaining items cannot describe.
func (e *Engine) checkSellable(s *State, item items.Item, remaining items.Set) error {
	switch eff := item.Effect.(type) {
	case items.SubroundBoost:
		if s.Started && s.Subround > e.rules.SubroundsPerRound+remaining.ExtraSubrounds() {
			return invalid(CodeItemLocked, "%s is needed for subround %d", item.Name, s.Subround)
		}
	case items.GreedyBoost:
		if s.Started && s.Round > e.totalRoundsFor(remaining) {
			return invalid(CodeItemLocked, "%s is needed for round %d", item.Name, s.Round)
		}
	case items.SlotBoost:
		if len(remaining) > e.Capacity(s)-eff.Value {
			return invalid(CodeItemLocked, "sell other items before giving up %d slots", eff.Value)
		}
	}
	return nil
}

// itemsChanged brings the state in line with the new item set: the ledger
// is resized and, in a game in progress, an unconfirmed hand is re-dealt at
// its current size so point changes show up immediately.
func (e *Engine) itemsChanged(s *State) {
	if s.GameOver {
		return
	}
	s.SubroundScores = resizeLedger(s.SubroundScores, max(e.SubroundsPerRound(s), s.Subround))
	if !s.Started || s.Confirmed {
		return
	}
	e.redeal(s)
}

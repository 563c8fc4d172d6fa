package simulator

import (
	"cmp"
	"slices"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/scoring"
)

// BestSelection returns the five cards of h that score highest under the
// owned items, trying every subset. Ties keep the earliest subset in hand
// order.
func BestSelection(h []deck.Card, owned items.Set) ([]deck.Card, scoring.Result) {
	if len(h) < hand.Size {
		return nil, scoring.Result{}
	}

	var (
		best      []deck.Card
		bestScore scoring.Result
		pick      = make([]deck.Card, hand.Size)
	)
	idx := []int{0, 1, 2, 3, 4}
	for {
		for i, j := range idx {
			pick[i] = h[j]
		}
		res := scoring.Evaluate(pick, owned)
		if best == nil || res.Score > bestScore.Score {
			best = slices.Clone(pick)
			bestScore = res
		}
		if !nextCombination(idx, len(h)) {
			break
		}
	}
	return best, bestScore
}

// nextCombination advances idx to the next k-subset of n in lexicographic
// order, reporting false after the last one.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}

// shop buys offers between rounds, most expensive first, while the total
// stays at or above reserve. It returns the score spent.
func shop(e *game.Engine, s *game.State, reserve int) (int, error) {
	if err := e.RefreshShop(s); err != nil {
		return 0, err
	}

	offers := slices.Clone(s.Offers)
	slices.SortStableFunc(offers, func(a, b items.Offer) int {
		return cmp.Compare(b.BasePrice, a.BasePrice)
	})

	spent := 0
	for _, o := range offers {
		if s.TotalScore-o.Price < reserve {
			continue
		}
		if _, err := e.Buy(s, o.ID); err != nil {
			if isRejected(err) {
				continue
			}
			return spent, err
		}
		spent += o.Price
	}
	return spent, nil
}

func isRejected(err error) bool {
	for _, code := range []game.Code{
		game.CodeInsufficientScore,
		game.CodeAlreadyOwned,
		game.CodeOneTimeRepurchase,
		game.CodeSlotsFull,
	} {
		if game.IsValidation(err, code) {
			return true
		}
	}
	return false
}

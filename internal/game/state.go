package game

import (
	"slices"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/items"
)

// Outcome is the final result of a game.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// Phase is where a game sits in the round progression. It is derived from
// the state fields rather than stored.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseDealt      Phase = "dealt"
	PhaseSelecting  Phase = "selecting"
	PhaseConfirmed  Phase = "confirmed"
	PhaseWon        Phase = "won"
	PhaseLost       Phase = "lost"
)

// State is the whole game document. It is mutated only through Engine
// methods, which validate fully before changing anything.
type State struct {
	Deck           []deck.Card   `json:"deck"`
	Hand           []deck.Card   `json:"playerHand"`
	Selected       []deck.Card   `json:"selectedCards"`
	Round          int           `json:"currentRound"`
	Subround       int           `json:"currentSubround"`
	SubroundScores []int         `json:"subroundScores"`
	TotalScore     int           `json:"totalScore"`
	Started        bool          `json:"gameStarted"`
	GameOver       bool          `json:"isGameOver"`
	Confirmed      bool          `json:"isSubroundConfirmed"`
	Owned          items.Set     `json:"ownedItems"`
	OwnedCount     int           `json:"ownedItemsCount"`
	MaxOwned       int           `json:"maxOwnedItems"`
	OneTime        []string      `json:"oneTimeItems,omitempty"`
	Offers         []items.Offer `json:"shopItems"`
	ShopRefreshes  int           `json:"shopRefreshCount"`
	Outcome        Outcome       `json:"outcome,omitempty"`
	Plays          []Play        `json:"plays,omitempty"`
}

// Play is one confirmed subround.
type Play struct {
	Round      int           `json:"round"`
	Subround   int           `json:"subround"`
	Cards      []deck.Card   `json:"cards"`
	Category   hand.Category `json:"category"`
	Multiplier float64       `json:"multiplier"`
	Points     int           `json:"points"`
	Score      int           `json:"score"`
	Total      int           `json:"total"`
}

// Phase derives the progression phase.
func (s *State) Phase() Phase {
	switch {
	case s.Outcome == OutcomeWon:
		return PhaseWon
	case s.Outcome == OutcomeLost:
		return PhaseLost
	case !s.Started:
		return PhaseNotStarted
	case s.Confirmed:
		return PhaseConfirmed
	case len(s.Selected) > 0:
		return PhaseSelecting
	}
	return PhaseDealt
}

// IsSelected reports whether the card with id is in the selection.
func (s *State) IsSelected(id string) bool {
	return slices.ContainsFunc(s.Selected, func(c deck.Card) bool { return c.ID == id })
}

// HasOneTime reports whether the one-time item id was already claimed.
func (s *State) HasOneTime(id string) bool {
	return slices.Contains(s.OneTime, id)
}

// Clone returns a deep copy, safe to hand to another goroutine.
func (s *State) Clone() *State {
	c := *s
	c.Deck = slices.Clone(s.Deck)
	c.Hand = slices.Clone(s.Hand)
	c.Selected = slices.Clone(s.Selected)
	c.SubroundScores = slices.Clone(s.SubroundScores)
	c.Owned = slices.Clone(s.Owned)
	c.OneTime = slices.Clone(s.OneTime)
	c.Offers = slices.Clone(s.Offers)
	c.Plays = make([]Play, len(s.Plays))
	for i, p := range s.Plays {
		p.Cards = slices.Clone(p.Cards)
		c.Plays[i] = p
	}
	if s.Plays == nil {
		c.Plays = nil
	}
	return &c
}

// resizeLedger returns a ledger of length n keeping existing scores.
func resizeLedger(ledger []int, n int) []int {
	if len(ledger) == n {
		return ledger
	}
	out := make([]int, n)
	copy(out, ledger)
	return out
}

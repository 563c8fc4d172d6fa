package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/wildpoker/internal/hand"
)

// DefaultThresholds are the cumulative scores needed to clear rounds one to
// eight.
var DefaultThresholds = []int{150, 300, 600, 1200, 6000, 12000, 96000, 192000}

// Rules holds the tunable constants of a game.
type Rules struct {
	HandSize          int
	SubroundsPerRound int
	TotalRounds       int
	// ExtendedRounds replaces TotalRounds while a round-extending item is owned.
	ExtendedRounds int
	MaxOwnedItems  int
	ShopSize       int
	Thresholds     []int
	// RevealDelay postpones the game over event. Zero publishes it at once.
	RevealDelay time.Duration
}

// DefaultRules returns the standard game.
func DefaultRules() Rules {
	return Rules{
		HandSize:          8,
		SubroundsPerRound: 3,
		TotalRounds:       8,
		ExtendedRounds:    12,
		MaxOwnedItems:     6,
		ShopSize:          6,
		Thresholds:        append([]int(nil), DefaultThresholds...),
		RevealDelay:       time.Second,
	}
}

// Validate checks the rules describe a playable game.
func (r Rules) Validate() error {
	var errs []error
	if r.HandSize < hand.Size {
		errs = append(errs, fmt.Errorf("hand size %d is smaller than a %d card selection", r.HandSize, hand.Size))
	}
	if r.SubroundsPerRound < 1 {
		errs = append(errs, fmt.Errorf("subrounds per round must be positive, got %d", r.SubroundsPerRound))
	}
	if r.TotalRounds < 1 {
		errs = append(errs, fmt.Errorf("total rounds must be positive, got %d", r.TotalRounds))
	}
	if r.ExtendedRounds < r.TotalRounds {
		errs = append(errs, fmt.Errorf("extended rounds %d is fewer than total rounds %d", r.ExtendedRounds, r.TotalRounds))
	}
	if r.MaxOwnedItems < 0 {
		errs = append(errs, fmt.Errorf("max owned items cannot be negative"))
	}
	if r.ShopSize < 0 {
		errs = append(errs, fmt.Errorf("shop size cannot be negative"))
	}
	if len(r.Thresholds) == 0 {
		errs = append(errs, errors.New("at least one round threshold is required"))
	}
	for i := 1; i < len(r.Thresholds); i++ {
		if r.Thresholds[i] < r.Thresholds[i-1] {
			errs = append(errs, fmt.Errorf("threshold for round %d is lower than round %d", i+1, i))
		}
	}
	if r.RevealDelay < 0 {
		errs = append(errs, errors.New("reveal delay cannot be negative"))
	}
	return errors.Join(errs...)
}

// Threshold returns the cumulative score needed to clear round (1-based).
// Rounds past the end of the table double the previous requirement.
func (r Rules) Threshold(round int) int {
	if len(r.Thresholds) == 0 {
		return 0
	}
	round = max(round, 1)
	if round <= len(r.Thresholds) {
		return r.Thresholds[round-1]
	}
	t := r.Thresholds[len(r.Thresholds)-1]
	for i := len(r.Thresholds); i < round; i++ {
		t *= 2
	}
	return t
}

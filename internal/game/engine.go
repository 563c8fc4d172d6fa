package game

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/randutil"
	"github.com/lox/wildpoker/internal/scoring"
)

// Engine applies moves to a State. It holds no game data of its own, so one
// engine can drive many states as long as each state has a single writer.
type Engine struct {
	rules    Rules
	rng      randutil.Source
	logger   *log.Logger
	clock    quartz.Clock
	eventBus EventBus
	catalog  []items.Template
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock sets the clock used for event timestamps and the outcome reveal.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithEventBus publishes events to bus instead of a private one.
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.eventBus = bus }
}

// WithCatalog limits the shop to the given templates.
func WithCatalog(templates []items.Template) Option {
	return func(e *Engine) { e.catalog = templates }
}

// NewEngine creates an engine drawing all randomness from rng.
func NewEngine(rules Rules, rng randutil.Source, logger *log.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		rules:    rules,
		rng:      rng,
		logger:   logger.WithPrefix("engine"),
		clock:    quartz.NewReal(),
		eventBus: NewEventBus(),
		catalog:  items.Catalog(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the rules the engine enforces.
func (e *Engine) Rules() Rules {
	return e.rules
}

// GetEventBus returns the event bus for subscribing to game events
func (e *Engine) GetEventBus() EventBus {
	return e.eventBus
}

// NewState returns a fresh, unstarted game.
func (e *Engine) NewState() *State {
	return &State{
		Round:          1,
		Subround:       1,
		SubroundScores: make([]int, e.rules.SubroundsPerRound),
		MaxOwned:       e.rules.MaxOwnedItems,
	}
}

// SubroundsPerRound is re-derived from the owned items on every call.
func (e *Engine) SubroundsPerRound(s *State) int {
	return e.rules.SubroundsPerRound + s.Owned.ExtraSubrounds()
}

// TotalRounds is re-derived from the owned items on every call.
func (e *Engine) TotalRounds(s *State) int {
	return e.totalRoundsFor(s.Owned)
}

func (e *Engine) totalRoundsFor(owned items.Set) int {
	if owned.HasKind(items.KindGreedyBoost) {
		return e.rules.ExtendedRounds
	}
	return e.rules.TotalRounds
}

// HandSize is the number of cards the next deal will hold.
func (e *Engine) HandSize(s *State) int {
	return e.rules.HandSize + s.Owned.HandSizeBonus()
}

// Threshold is the cumulative score needed to clear the current round.
func (e *Engine) Threshold(s *State) int {
	return e.rules.Threshold(s.Round)
}

// Capacity is the number of item slots, falling back to the rules for
// documents saved before the field existed.
func (e *Engine) Capacity(s *State) int {
	if s.MaxOwned == 0 {
		return e.rules.MaxOwnedItems
	}
	return s.MaxOwned
}

// Start deals the first hand. Owned items, score and round carry over from
// the state so a game may be set up before it starts.
func (e *Engine) Start(s *State) error {
	switch {
	case s.GameOver:
		return invalid(CodeGameOver, "the game is over, reset to play again")
	case s.Started:
		return invalid(CodeAlreadyStarted, "the game has already started")
	}

	s.Started = true
	s.Round = max(s.Round, 1)
	s.Subround = 1
	s.SubroundScores = make([]int, e.SubroundsPerRound(s))
	s.Confirmed = false
	s.Outcome = OutcomeNone

	e.logger.Debug("Starting game", "round", s.Round, "totalRounds", e.TotalRounds(s), "items", len(s.Owned))
	e.publish(GameStartedEvent{Round: s.Round, TotalRounds: e.TotalRounds(s), Threshold: e.Threshold(s), timestamp: e.clock.Now()})
	e.deal(s)
	return nil
}

// Reset discards the game in place.
func (e *Engine) Reset(s *State) {
	*s = *e.NewState()
	e.logger.Debug("Game reset")
}

// Toggle adds the card with id to the selection, or removes it if already
// selected. The selection holds copies of the hand's cards.
func (e *Engine) Toggle(s *State, id string) error {
	if err := e.checkPlaying(s); err != nil {
		return err
	}
	if s.Confirmed {
		return invalid(CodeAlreadyConfirmed, "this subround is already confirmed")
	}
	i := slices.IndexFunc(s.Hand, func(c deck.Card) bool { return c.ID == id })
	if i < 0 {
		return invalid(CodeUnknownCard, "card %s is not in the hand", id)
	}

	if j := slices.IndexFunc(s.Selected, func(c deck.Card) bool { return c.ID == id }); j >= 0 {
		s.Selected = slices.Delete(slices.Clone(s.Selected), j, j+1)
	} else {
		if len(s.Selected) >= hand.Size {
			return invalid(CodeSelectionFull, "at most %d cards can be selected", hand.Size)
		}
		s.Selected = append(slices.Clone(s.Selected), s.Hand[i])
	}

	ev := SelectionChangedEvent{Selected: slices.Clone(s.Selected), timestamp: e.clock.Now()}
	if p, ok := e.Preview(s); ok {
		ev.Preview = &p
	}
	e.publish(ev)
	return nil
}

// Preview is the score the current selection would earn if confirmed.
type Preview struct {
	BasePoints int `json:"basePoints"`
	scoring.Result
}

// Preview scores the selection without confirming it. It reports false
// until exactly five cards are selected.
func (e *Engine) Preview(s *State) (Preview, bool) {
	if len(s.Selected) != hand.Size {
		return Preview{}, false
	}
	return Preview{
		BasePoints: scoring.BasePoints(s.Selected),
		Result:     scoring.Evaluate(s.Selected, s.Owned),
	}, true
}

// Multipliers is the per-category multiplier table under the owned items.
func (e *Engine) Multipliers(s *State) []scoring.Breakdown {
	return scoring.Table(s.Owned)
}

// Confirm scores the selection into the current subround. After the last
// subround of a round the cumulative total is checked against the round's
// threshold: falling short loses the game immediately.
func (e *Engine) Confirm(s *State) (Play, error) {
	if err := e.checkPlaying(s); err != nil {
		return Play{}, err
	}
	if s.Confirmed {
		return Play{}, invalid(CodeAlreadyConfirmed, "this subround is already confirmed")
	}
	if len(s.Selected) != hand.Size {
		return Play{}, invalid(CodeWrongSelectionCount, "select exactly %d cards (%d selected)", hand.Size, len(s.Selected))
	}

	res := scoring.Evaluate(s.Selected, s.Owned)
	subrounds := e.SubroundsPerRound(s)

	s.SubroundScores = resizeLedger(s.SubroundScores, max(subrounds, s.Subround))
	s.SubroundScores[s.Subround-1] = res.Score
	s.TotalScore += res.Score
	s.Confirmed = true

	play := Play{
		Round:      s.Round,
		Subround:   s.Subround,
		Cards:      slices.Clone(s.Selected),
		Category:   res.Category,
		Multiplier: res.Breakdown.Final,
		Points:     res.Points,
		Score:      res.Score,
		Total:      s.TotalScore,
	}
	s.Plays = append(s.Plays, play)

	e.logger.Debug("Subround confirmed",
		"round", s.Round,
		"subround", s.Subround,
		"category", res.Category,
		"multiplier", res.Breakdown.Final,
		"score", res.Score,
		"total", s.TotalScore)
	e.publish(SubroundConfirmedEvent{Play: play, timestamp: e.clock.Now()})

	if s.Subround >= subrounds {
		e.endRound(s)
	}
	return play, nil
}

func (e *Engine) endRound(s *State) {
	threshold := e.Threshold(s)
	switch {
	case s.TotalScore < threshold:
		e.finish(s, OutcomeLost)
	case s.Round >= e.TotalRounds(s):
		e.finish(s, OutcomeWon)
	default:
		e.logger.Info("Round cleared", "round", s.Round, "total", s.TotalScore, "threshold", threshold)
		e.publish(RoundClearedEvent{Round: s.Round, TotalScore: s.TotalScore, Threshold: threshold, timestamp: e.clock.Now()})
	}
}

// finish settles the outcome at once and publishes it after the reveal
// delay, which is purely presentational.
func (e *Engine) finish(s *State, outcome Outcome) {
	s.GameOver = true
	s.Outcome = outcome

	threshold := e.Threshold(s)
	e.logger.Info("Game over", "outcome", outcome, "round", s.Round, "total", s.TotalScore, "threshold", threshold)

	ev := GameOverEvent{Outcome: outcome, Round: s.Round, TotalScore: s.TotalScore, Threshold: threshold}
	if e.rules.RevealDelay <= 0 {
		ev.timestamp = e.clock.Now()
		e.publish(ev)
		return
	}
	e.clock.AfterFunc(e.rules.RevealDelay, func() {
		ev.timestamp = e.clock.Now()
		e.publish(ev)
	})
}

// AdvanceSubround deals the next subround of the current round.
func (e *Engine) AdvanceSubround(s *State) error {
	if err := e.checkAdvance(s); err != nil {
		return err
	}
	subrounds := e.SubroundsPerRound(s)
	if s.Subround >= subrounds {
		return invalid(CodeLastSubround, "subround %d is the last of round %d", s.Subround, s.Round)
	}

	s.Subround++
	s.Confirmed = false
	s.SubroundScores = resizeLedger(s.SubroundScores, subrounds)

	e.logger.Debug("Next subround", "round", s.Round, "subround", s.Subround)
	e.deal(s)
	return nil
}

// AdvanceRound starts the next round once the last subround is confirmed.
// The threshold was settled by that confirm, so spending score in the shop
// afterwards does not block advancing.
func (e *Engine) AdvanceRound(s *State) error {
	if err := e.checkAdvance(s); err != nil {
		return err
	}
	if subrounds := e.SubroundsPerRound(s); s.Subround < subrounds {
		return invalid(CodeRoundIncomplete, "round %d still has %d subrounds to play", s.Round, subrounds-s.Subround)
	}

	s.Round++
	s.Subround = 1
	s.Confirmed = false
	s.SubroundScores = make([]int, e.SubroundsPerRound(s))

	e.logger.Debug("Next round", "round", s.Round, "threshold", e.Threshold(s))
	e.deal(s)
	return nil
}

func (e *Engine) checkPlaying(s *State) error {
	switch {
	case s.GameOver:
		return invalid(CodeGameOver, "the game is over")
	case !s.Started:
		return invalid(CodeNotStarted, "the game has not started")
	}
	return nil
}

func (e *Engine) checkAdvance(s *State) error {
	if err := e.checkPlaying(s); err != nil {
		return err
	}
	if !s.Confirmed {
		return invalid(CodeNotConfirmed, "confirm the current subround first")
	}
	return nil
}

// deal rebuilds the deck from the owned items and deals a full hand.
func (e *Engine) deal(s *State) {
	cards := items.BuildDeck(s.Owned, e.rng)
	deck.Shuffle(cards, e.rng)
	s.Hand, s.Deck = deck.Deal(cards, e.HandSize(s))
	s.Deck = slices.Clone(s.Deck)
	s.Selected = nil

	e.publish(HandDealtEvent{Round: s.Round, Subround: s.Subround, Hand: slices.Clone(s.Hand), timestamp: e.clock.Now()})
}

// redeal rebuilds the deck after an item change and re-slices the hand at
// its current size, keeping selected cards that are still dealt.
func (e *Engine) redeal(s *State) {
	size := len(s.Hand)
	cards := items.BuildDeck(s.Owned, e.rng)
	deck.Shuffle(cards, e.rng)
	s.Hand, s.Deck = deck.Deal(cards, size)
	s.Deck = slices.Clone(s.Deck)

	var kept []deck.Card
	for _, sel := range s.Selected {
		if i := slices.IndexFunc(s.Hand, func(c deck.Card) bool { return c.ID == sel.ID }); i >= 0 {
			kept = append(kept, s.Hand[i])
		}
	}
	s.Selected = kept

	e.publish(HandDealtEvent{Round: s.Round, Subround: s.Subround, Hand: slices.Clone(s.Hand), Rebuilt: true, timestamp: e.clock.Now()})
}

func (e *Engine) publish(event GameEvent) {
	if e.eventBus != nil {
		e.eventBus.Publish(event)
	}
}

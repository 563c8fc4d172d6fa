package game

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/randutil"
	"github.com/stretchr/testify/require"
)

// eventRecorder collects published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.EventType()
	}
	return out
}

func (r *eventRecorder) last() GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// newTestEngine builds an engine with a fixed seed, no reveal delay and a
// recorder subscribed to its events.
func newTestEngine(t *testing.T, mutate func(*Rules), opts ...Option) (*Engine, *eventRecorder) {
	t.Helper()
	rules := DefaultRules()
	rules.RevealDelay = 0
	if mutate != nil {
		mutate(&rules)
	}
	require.NoError(t, rules.Validate())

	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	e := NewEngine(rules, randutil.New(42), logger, opts...)
	rec := &eventRecorder{}
	e.GetEventBus().Subscribe(rec)
	return e, rec
}

// setHand replaces the dealt hand with fixed cards.
func setHand(s *State, cards string) {
	s.Hand = deck.MustParseCards(cards)
	s.Selected = nil
}

func selectCards(t *testing.T, e *Engine, s *State, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, e.Toggle(s, id))
	}
}

func selectFirst(t *testing.T, e *Engine, s *State, n int) {
	t.Helper()
	for _, c := range s.Hand[:n] {
		require.NoError(t, e.Toggle(s, c.ID))
	}
}

func offerOf(t *testing.T, id string, price int) items.Offer {
	t.Helper()
	tpl, ok := items.Lookup(id)
	require.True(t, ok, id)
	return items.Offer{Template: tpl, Price: price, SellPrice: price / 2}
}

func ownedOf(t *testing.T, ids ...string) items.Set {
	t.Helper()
	var s items.Set
	for _, id := range ids {
		s = append(s, offerOf(t, id, 100).Item())
	}
	return s
}

// fullHouse is five cards scoring 30 points as a Full House.
const fullHouse = "5c 5d 9s 9h W 3c 4d 6h"

var fullHouseIDs = []string{"club-5", "diamond-5", "spade-9", "heart-9", "Joker1"}

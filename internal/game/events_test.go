package game

import (
	"strings"
	"testing"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusSubscribeUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	first := &eventRecorder{}
	second := &eventRecorder{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(RoundClearedEvent{Round: 1})
	bus.Unsubscribe(first)
	bus.Publish(RoundClearedEvent{Round: 2})

	assert.Len(t, first.types(), 1)
	assert.Len(t, second.types(), 2)
}

func TestEventBusFuncSubscriber(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	fn := SubscriberFunc(func(ev GameEvent) { got = append(got, ev.EventType()) })
	bus.Subscribe(fn)

	bus.Publish(ShopRefreshedEvent{Count: 1})
	// Functions are not comparable, so this is a no-op rather than a panic.
	bus.Unsubscribe(fn)
	bus.Publish(ItemSoldEvent{})

	assert.Equal(t, []EventType{EventTypeShopRefreshed, EventTypeItemSold}, got)
}

func TestEngineEventsCarryTimestamps(t *testing.T) {
	e, rec := newTestEngine(t, nil)
	s := e.NewState()
	require.NoError(t, e.Start(s))

	for _, ev := range rec.events {
		assert.False(t, ev.Timestamp().IsZero(), ev.EventType().String())
	}
}

func TestEventFormatter(t *testing.T) {
	play := Play{
		Round:      2,
		Subround:   3,
		Cards:      deck.MustParseCards("5c 5d 9s 9h W"),
		Category:   hand.FullHouse,
		Multiplier: 7,
		Points:     30,
		Score:      210,
		Total:      510,
	}

	tests := []struct {
		name     string
		opts     FormattingOptions
		event    GameEvent
		expected string
	}{
		{
			name:     "game started",
			event:    GameStartedEvent{Round: 1, TotalRounds: 8, Threshold: 150},
			expected: "Game started: 8 rounds, round 1 needs 150",
		},
		{
			name:     "dealt without cards",
			event:    HandDealtEvent{Round: 1, Subround: 2, Hand: play.Cards},
			expected: "Dealt round 1 subround 2",
		},
		{
			name:     "rebuilt with cards",
			opts:     FormattingOptions{ShowCards: true},
			event:    HandDealtEvent{Round: 1, Subround: 1, Hand: play.Cards[:2], Rebuilt: true},
			expected: "Re-dealt round 1 subround 1 [5♣ 5♦]",
		},
		{
			name:     "confirmed play",
			event:    SubroundConfirmedEvent{Play: play},
			expected: "R2.3 Full House: 30 pts x7.00 = 210 (total 510)",
		},
		{
			name:     "round cleared",
			event:    RoundClearedEvent{Round: 2, TotalScore: 510, Threshold: 300},
			expected: "Round 2 cleared with 510/300",
		},
		{
			name:     "lost",
			event:    GameOverEvent{Outcome: OutcomeLost, Round: 3, TotalScore: 510, Threshold: 600},
			expected: "*** GAME OVER *** round 3 needed 600, scored 510",
		},
		{
			name:     "won",
			event:    GameOverEvent{Outcome: OutcomeWon, Round: 8, TotalScore: 200000},
			expected: "*** YOU WIN *** final score 200000",
		},
		{
			name:     "shop",
			event:    ShopRefreshedEvent{Count: 4},
			expected: "Shop refreshed (#4): 0 offers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewEventFormatter(tt.opts)
			assert.Equal(t, tt.expected, f.Format(tt.event))
		})
	}
}

func TestEventFormatterColoursRedSuits(t *testing.T) {
	f := NewEventFormatter(FormattingOptions{ShowCards: true, Color: true})
	line := f.FormatPlay(Play{Cards: deck.MustParseCards("5h 5c"), Category: hand.Pair})
	assert.True(t, strings.Contains(line, "\033[31m5♥\033[0m"), line)
	assert.True(t, strings.Contains(line, " 5♣]"), line)
}

package game

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartDealsHand(t *testing.T) {
	e, rec := newTestEngine(t, nil)
	s := e.NewState()
	assert.Equal(t, PhaseNotStarted, s.Phase())

	require.NoError(t, e.Start(s))
	assert.True(t, s.Started)
	assert.Len(t, s.Hand, 8)
	assert.Len(t, s.Deck, 54-8)
	assert.Equal(t, []int{0, 0, 0}, s.SubroundScores)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 1, s.Subround)
	assert.Equal(t, PhaseDealt, s.Phase())
	assert.Equal(t, []EventType{EventTypeGameStarted, EventTypeHandDealt}, rec.types())

	err := e.Start(s)
	assert.True(t, IsValidation(err, CodeAlreadyStarted), "got %v", err)
}

func TestStartAppliesOwnedItems(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	s.Owned = ownedOf(t, "ghost_hand", "barely_alive", "circus_leak", "greedy_demon")

	require.NoError(t, e.Start(s))
	assert.Len(t, s.Hand, 9)
	assert.Equal(t, 55, len(s.Hand)+len(s.Deck))
	assert.Len(t, s.SubroundScores, 4)
	assert.Equal(t, 4, e.SubroundsPerRound(s))
	assert.Equal(t, 12, e.TotalRounds(s))
}

func TestDerivedCountsFollowItems(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	assert.Equal(t, 3, e.SubroundsPerRound(s))
	assert.Equal(t, 8, e.TotalRounds(s))
	assert.Equal(t, 8, e.HandSize(s))

	s.Owned = ownedOf(t, "ghost_hand", "ghost_hand2")
	assert.Equal(t, 11, e.HandSize(s))

	s.Owned = ownedOf(t, "barely_alive")
	assert.Equal(t, 4, e.SubroundsPerRound(s))
	s.Owned = nil
	assert.Equal(t, 3, e.SubroundsPerRound(s), "not cached")
}

func TestToggleSelection(t *testing.T) {
	e, rec := newTestEngine(t, nil)
	s := e.NewState()
	require.NoError(t, e.Start(s))
	setHand(s, fullHouse)
	rec.reset()

	selectCards(t, e, s, "club-5", "Joker1")
	assert.Equal(t, PhaseSelecting, s.Phase())
	require.Len(t, s.Selected, 2)
	assert.Equal(t, "Joker1", s.Selected[1].ID)

	require.NoError(t, e.Toggle(s, "club-5"))
	require.Len(t, s.Selected, 1)
	assert.Equal(t, "Joker1", s.Selected[0].ID)

	err := e.Toggle(s, "spade-K")
	assert.True(t, IsValidation(err, CodeUnknownCard))
	assert.Len(t, rec.types(), 3)
}

func TestToggleRejectsSixthCard(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	require.NoError(t, e.Start(s))
	setHand(s, fullHouse)
	selectCards(t, e, s, fullHouseIDs...)

	err := e.Toggle(s, "club-3")
	assert.True(t, IsValidation(err, CodeSelectionFull), "got %v", err)
	assert.Len(t, s.Selected, 5)
	assert.False(t, s.IsSelected("club-3"))

	// Deselecting is always allowed
	require.NoError(t, e.Toggle(s, "club-5"))
	assert.Len(t, s.Selected, 4)
}

func TestSelectionIsACopy(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	require.NoError(t, e.Start(s))
	selectFirst(t, e, s, 1)
	s.Hand[0].FinalPoint = 999
	assert.NotEqual(t, 999, s.Selected[0].FinalPoint)
}

func TestConfirmRequiresFiveCards(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	require.NoError(t, e.Start(s))
	setHand(s, fullHouse)
	selectCards(t, e, s, fullHouseIDs[:4]...)
	before := s.Clone()

	_, err := e.Confirm(s)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeWrongSelectionCount, verr.Code)
	assert.Equal(t, before, s)
	assert.Equal(t, 1, s.Subround)
	assert.Equal(t, []int{0, 0, 0}, s.SubroundScores)
}

func TestConfirmScoresSelection(t *testing.T) {
	e, rec := newTestEngine(t, nil)
	s := e.NewState()
	require.NoError(t, e.Start(s))
	setHand(s, fullHouse)
	selectCards(t, e, s, fullHouseIDs...)

	p, ok := e.Preview(s)
	require.True(t, ok)
	assert.Equal(t, hand.FullHouse, p.Category)
	assert.Equal(t, 210, p.Score)
	assert.Equal(t, 30, p.BasePoints)

	play, err := e.Confirm(s)
	require.NoError(t, err)
	assert.Equal(t, hand.FullHouse, play.Category)
	assert.Equal(t, 7.0, play.Multiplier)
	assert.Equal(t, 30, play.Points)
	assert.Equal(t, 210, play.Score)
	assert.Equal(t, 210, play.Total)

	assert.Equal(t, []int{210, 0, 0}, s.SubroundScores)
	assert.Equal(t, 210, s.TotalScore)
	assert.True(t, s.Confirmed)
	assert.Equal(t, PhaseConfirmed, s.Phase())
	assert.Len(t, s.Plays, 1)
	assert.Equal(t, EventTypeSubroundConfirmed, rec.last().EventType())

	_, err = e.Confirm(s)
	assert.True(t, IsValidation(err, CodeAlreadyConfirmed))
	err = e.Toggle(s, "club-3")
	assert.True(t, IsValidation(err, CodeAlreadyConfirmed))
}

func TestPreviewNeedsFiveCards(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	require.NoError(t, e.Start(s))
	selectFirst(t, e, s, 4)
	_, ok := e.Preview(s)
	assert.False(t, ok)
}

func TestMovesBeforeStart(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()

	_, err := e.Confirm(s)
	assert.True(t, IsValidation(err, CodeNotStarted))
	assert.True(t, IsValidation(e.Toggle(s, "club-3"), CodeNotStarted))
	assert.True(t, IsValidation(e.AdvanceSubround(s), CodeNotStarted))
	assert.True(t, IsValidation(e.AdvanceRound(s), CodeNotStarted))
}

func TestSubroundProgression(t *testing.T) {
	e, _ := newTestEngine(t, func(r *Rules) { r.Thresholds = []int{1} })
	s := e.NewState()
	require.NoError(t, e.Start(s))

	assert.True(t, IsValidation(e.AdvanceSubround(s), CodeNotConfirmed))

	for sub := 1; sub <= 3; sub++ {
		assert.Equal(t, sub, s.Subround)
		selectFirst(t, e, s, 5)
		_, err := e.Confirm(s)
		require.NoError(t, err)
		if sub < 3 {
			assert.True(t, IsValidation(e.AdvanceRound(s), CodeRoundIncomplete))
			require.NoError(t, e.AdvanceSubround(s))
			assert.False(t, s.Confirmed)
			assert.Empty(t, s.Selected)
			assert.Len(t, s.Hand, 8)
		}
	}

	assert.True(t, IsValidation(e.AdvanceSubround(s), CodeLastSubround))
	assert.False(t, s.GameOver)

	total := s.TotalScore
	require.NoError(t, e.AdvanceRound(s))
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, 1, s.Subround)
	assert.Equal(t, []int{0, 0, 0}, s.SubroundScores)
	assert.Equal(t, total, s.TotalScore, "total carries across rounds")
}

func TestFailingThresholdLosesImmediately(t *testing.T) {
	e, rec := newTestEngine(t, func(r *Rules) {
		r.SubroundsPerRound = 1
		r.Thresholds = []int{1000, 2000}
	})
	s := e.NewState()
	require.NoError(t, e.Start(s))
	setHand(s, fullHouse)
	selectCards(t, e, s, fullHouseIDs...)

	_, err := e.Confirm(s)
	require.NoError(t, err)
	assert.True(t, s.GameOver)
	assert.Equal(t, OutcomeLost, s.Outcome)
	assert.Equal(t, PhaseLost, s.Phase())

	ev, ok := rec.last().(GameOverEvent)
	require.True(t, ok)
	assert.Equal(t, OutcomeLost, ev.Outcome)
	assert.Equal(t, 1000, ev.Threshold)
	assert.Equal(t, 210, ev.TotalScore)

	assert.True(t, IsValidation(e.AdvanceRound(s), CodeGameOver))
	assert.True(t, IsValidation(e.Start(s), CodeGameOver))
}

func TestClearingFinalRoundWins(t *testing.T) {
	e, rec := newTestEngine(t, func(r *Rules) {
		r.SubroundsPerRound = 1
		r.TotalRounds = 2
		r.ExtendedRounds = 3
		r.Thresholds = []int{100, 200}
	})
	s := e.NewState()
	require.NoError(t, e.Start(s))

	setHand(s, fullHouse)
	selectCards(t, e, s, fullHouseIDs...)
	_, err := e.Confirm(s)
	require.NoError(t, err)
	assert.False(t, s.GameOver)
	assert.Equal(t, EventTypeRoundCleared, rec.last().EventType())

	require.NoError(t, e.AdvanceRound(s))
	setHand(s, fullHouse)
	selectCards(t, e, s, fullHouseIDs...)
	_, err = e.Confirm(s)
	require.NoError(t, err)
	assert.True(t, s.GameOver)
	assert.Equal(t, OutcomeWon, s.Outcome)
	assert.Equal(t, 420, s.TotalScore)
}

func TestExtendedRoundsUseDoubledThresholds(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, 150, rules.Threshold(1))
	assert.Equal(t, 192000, rules.Threshold(8))
	assert.Equal(t, 384000, rules.Threshold(9))
	assert.Equal(t, 192000*16, rules.Threshold(12))
	assert.Equal(t, 150, rules.Threshold(0))
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	bad := DefaultRules()
	bad.HandSize = 4
	bad.Thresholds = []int{300, 150}
	bad.ExtendedRounds = 2
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hand size")
	assert.Contains(t, err.Error(), "threshold for round 2")
	assert.Contains(t, err.Error(), "extended rounds")
}

func TestGameOverRevealWaitsForClock(t *testing.T) {
	clock := quartz.NewMock(t)
	e, rec := newTestEngine(t, func(r *Rules) {
		r.SubroundsPerRound = 1
		r.Thresholds = []int{1000}
		r.RevealDelay = time.Second
	}, WithClock(clock))

	s := e.NewState()
	require.NoError(t, e.Start(s))
	setHand(s, fullHouse)
	selectCards(t, e, s, fullHouseIDs...)
	_, err := e.Confirm(s)
	require.NoError(t, err)

	// The outcome is settled synchronously; only the event waits.
	assert.True(t, s.GameOver)
	assert.NotContains(t, rec.types(), EventTypeGameOver)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(time.Second).MustWait(ctx)

	assert.Equal(t, EventTypeGameOver, rec.last().EventType())
	assert.Equal(t, clock.Now(), rec.last().Timestamp())
}

func TestResetDiscardsGame(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	s.Owned = ownedOf(t, "gold_boost")
	require.NoError(t, e.Start(s))
	selectFirst(t, e, s, 5)
	_, err := e.Confirm(s)
	require.NoError(t, err)

	e.Reset(s)
	assert.Equal(t, e.NewState(), s)
	require.NoError(t, e.Start(s))
}

func TestStateJSONUsesSavedFieldNames(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s := e.NewState()
	s.Owned = ownedOf(t, "gold_boost", "three_backstab")
	s.OwnedCount = 2
	require.NoError(t, e.Start(s))
	require.NoError(t, e.RefreshShop(s))
	selectFirst(t, e, s, 5)
	_, err := e.Confirm(s)
	require.NoError(t, err)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &fields))
	for _, key := range []string{
		"deck", "playerHand", "selectedCards", "currentRound", "currentSubround",
		"subroundScores", "totalScore", "gameStarted", "isGameOver", "isSubroundConfirmed",
		"ownedItems", "ownedItemsCount", "maxOwnedItems", "shopItems", "shopRefreshCount",
	} {
		assert.Contains(t, fields, key)
	}

	var back State
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, &back)
}

package history_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/history"
	"github.com/lox/wildpoker/internal/items"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCard(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10h", "Th"},
		{"Ac", "Ac"},
		{"2s", "2s"},
		{"Qd", "Qd"},
		{"W", "W"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cards := deck.MustParseCards(tt.in)
			assert.Equal(t, tt.want, history.FormatCard(cards[0]))
		})
	}
}

func TestParseCardsInvertsFormat(t *testing.T) {
	cards := deck.MustParseCards("5c 10d W Ks W")
	back, err := history.ParseCards(history.FormatCards(cards))
	require.NoError(t, err)
	assert.Equal(t, cards, back)
}

func sampleState() *game.State {
	tpl, _ := items.Lookup("gold_boost")
	return &game.State{
		Round:      2,
		TotalScore: 510,
		Outcome:    game.OutcomeLost,
		Owned:      items.Set{items.Offer{Template: tpl, Price: 500, SellPrice: 250}.Item()},
		OneTime:    []string{"wife_fund"},
		Plays: []game.Play{
			{
				Round: 1, Subround: 1,
				Cards:      deck.MustParseCards("5c 5d 9s 9h W"),
				Category:   hand.FullHouse,
				Multiplier: 7,
				Points:     30,
				Score:      210,
				Total:      210,
			},
			{
				Round: 2, Subround: 1,
				Cards:      deck.MustParseCards("3c 4d 5h 6s 7c"),
				Category:   hand.Straight,
				Multiplier: 5.5,
				Points:     60,
				Score:      300,
				Total:      510,
			},
		},
	}
}

func TestEncodeRecord(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rec := history.FromState("01h455vb4pex5vsknk084sn02q", sampleState(), at)

	data, err := history.EncodeToBytes(rec)
	require.NoError(t, err)
	out := string(data)

	for _, want := range []string{
		`session = "01h455vb4pex5vsknk084sn02q"`,
		`outcome = "lost"`,
		`items = ["gold_boost"]`,
		`time = "2026-03-14T09:26:53Z"`,
		`[[play]]`,
		`cards = ["5c", "5d", "9s", "9h", "W"]`,
		`category = "Full House"`,
		`multiplier = 5.5`,
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 2, strings.Count(out, "[[play]]"))
}

func TestDecodeRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rec := history.FromState("abc", sampleState(), at)

	var buf bytes.Buffer
	require.NoError(t, history.Encode(&buf, rec))

	back, err := history.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestEncodeNil(t *testing.T) {
	err := history.Encode(&bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestDecodeRejectsBadTime(t *testing.T) {
	_, err := history.Decode(strings.NewReader("session = \"x\"\ntime = \"yesterday\"\n"))
	assert.ErrorContains(t, err, "time")
}

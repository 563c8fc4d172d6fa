package game

import (
	"fmt"
	"strings"

	"github.com/lox/wildpoker/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowCards bool // Include card lists (for logs and history)
	Color     bool // Wrap red suits in ANSI colour
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any engine event as a single line
func (ef *EventFormatter) Format(event GameEvent) string {
	switch ev := event.(type) {
	case GameStartedEvent:
		return fmt.Sprintf("Game started: %d rounds, round %d needs %d", ev.TotalRounds, ev.Round, ev.Threshold)
	case HandDealtEvent:
		verb := "Dealt"
		if ev.Rebuilt {
			verb = "Re-dealt"
		}
		line := fmt.Sprintf("%s round %d subround %d", verb, ev.Round, ev.Subround)
		if ef.opts.ShowCards {
			line += " " + ef.formatCards(ev.Hand)
		}
		return line
	case SelectionChangedEvent:
		line := fmt.Sprintf("Selected %d cards", len(ev.Selected))
		if ev.Preview != nil {
			line += fmt.Sprintf(": %s x%.2f = %d", ev.Preview.Category, ev.Preview.Breakdown.Final, ev.Preview.Score)
		}
		return line
	case SubroundConfirmedEvent:
		return ef.FormatPlay(ev.Play)
	case RoundClearedEvent:
		return fmt.Sprintf("Round %d cleared with %d/%d", ev.Round, ev.TotalScore, ev.Threshold)
	case GameOverEvent:
		if ev.Outcome == OutcomeWon {
			return fmt.Sprintf("*** YOU WIN *** final score %d", ev.TotalScore)
		}
		return fmt.Sprintf("*** GAME OVER *** round %d needed %d, scored %d", ev.Round, ev.Threshold, ev.TotalScore)
	case ItemBoughtEvent:
		return fmt.Sprintf("Bought %s for %d (score %d)", ev.Item.Name, ev.Price, ev.TotalScore)
	case ItemSoldEvent:
		return fmt.Sprintf("Sold %s for %d (score %d)", ev.Item.Name, ev.Item.SellPrice, ev.TotalScore)
	case ShopRefreshedEvent:
		return fmt.Sprintf("Shop refreshed (#%d): %d offers", ev.Count, len(ev.Offers))
	}
	return event.EventType().String()
}

// FormatPlay formats a confirmed subround
func (ef *EventFormatter) FormatPlay(p Play) string {
	line := fmt.Sprintf("R%d.%d %s: %d pts x%.2f = %d (total %d)",
		p.Round, p.Subround, p.Category, p.Points, p.Multiplier, p.Score, p.Total)
	if ef.opts.ShowCards {
		line += " " + ef.formatCards(p.Cards)
	}
	return line
}

func (ef *EventFormatter) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, len(cards))
	for i, card := range cards {
		formatted[i] = ef.formatCard(card)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func (ef *EventFormatter) formatCard(card deck.Card) string {
	if ef.opts.Color && card.IsRed() {
		return fmt.Sprintf("\033[31m%s\033[0m", card.String())
	}
	return card.String()
}

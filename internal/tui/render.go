package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/wildpoker/internal/deck"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/scoring"
)

// RenderCard styles one card. Boosted cards show their point boost.
func RenderCard(c deck.Card, selected, cursor bool) string {
	style := BlackCardStyle
	switch {
	case c.Wild:
		style = WildCardStyle
	case c.IsRed():
		style = RedCardStyle
	}
	if selected {
		style = style.Inherit(SelectedCardStyle)
	}
	if cursor {
		style = style.Inherit(CursorStyle)
	}
	label := c.String()
	if c.PointBoost != 0 {
		label += fmt.Sprintf("+%d", c.PointBoost)
	}
	return style.Render(label)
}

// RenderHand renders the dealt hand with the cursor position and selection.
func RenderHand(s *game.State, cursor int) string {
	if len(s.Hand) == 0 {
		return InfoStyle.Render("no cards dealt")
	}
	cards := make([]string, len(s.Hand))
	for i, c := range s.Hand {
		cards[i] = RenderCard(c, s.IsSelected(c.ID), i == cursor)
	}
	return strings.Join(cards, "  ")
}

// RenderStatus renders round progress, score against threshold and slots.
func RenderStatus(e *game.Engine, s *game.State) string {
	threshold := e.Threshold(s)
	score := fmt.Sprintf("Score %d/%d", s.TotalScore, threshold)
	if s.TotalScore >= threshold {
		score = SuccessStyle.Render(score)
	} else {
		score = WarningStyle.Render(score)
	}
	return strings.Join([]string{
		fmt.Sprintf("Round %d/%d", s.Round, e.TotalRounds(s)),
		fmt.Sprintf("Subround %d/%d", s.Subround, e.SubroundsPerRound(s)),
		score,
		fmt.Sprintf("Items %d/%d", len(s.Owned), e.Capacity(s)),
	}, "  │  ")
}

// RenderLedger renders this round's subround scores.
func RenderLedger(s *game.State) string {
	parts := make([]string, len(s.SubroundScores))
	for i, v := range s.SubroundScores {
		parts[i] = strconv.Itoa(v)
		if i == s.Subround-1 {
			parts[i] = "[" + parts[i] + "]"
		}
	}
	return "Subrounds: " + strings.Join(parts, " · ")
}

// RenderPreview renders the score the selection would earn.
func RenderPreview(p game.Preview) string {
	return HandInfoStyle.Render(fmt.Sprintf("%s  %d pts × %s = %d",
		p.Category, p.Points, formatMultiplier(p.Breakdown), p.Score))
}

func formatMultiplier(b scoring.Breakdown) string {
	return strconv.FormatFloat(b.Final, 'f', -1, 64)
}

// RenderOwned lists owned items, oldest first.
func RenderOwned(owned items.Set) string {
	if len(owned) == 0 {
		return InfoStyle.Render("no items")
	}
	lines := make([]string, len(owned))
	for i, it := range owned {
		lines[i] = fmt.Sprintf("%s %s (sells %d)", it.Icon, it.Name, it.SellPrice)
	}
	return strings.Join(lines, "\n")
}

// RenderOffers lists shop offers numbered for the buy keys.
func RenderOffers(offers []items.Offer, score int) string {
	if len(offers) == 0 {
		return InfoStyle.Render("shop closed, press s to refresh")
	}
	lines := make([]string, len(offers))
	for i, o := range offers {
		line := fmt.Sprintf("%d. %s %s %d", i+1, o.Icon, o.Name, o.Price)
		if o.Price > score {
			line = InfoStyle.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// RenderMultipliers renders the multiplier table, strongest category first.
func RenderMultipliers(table []scoring.Breakdown) string {
	var b strings.Builder
	for _, row := range table {
		fmt.Fprintf(&b, "%-16s ×%-6s", row.Category, formatMultiplier(row))
		if row.Final != row.Base {
			fmt.Fprintf(&b, " (base ×%s)", strconv.FormatFloat(row.Base, 'f', -1, 64))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders a static overview of a game, for non-interactive output.
func Summary(e *game.Engine, s *game.State) string {
	sections := []string{
		HeaderStyle.Render("WILD POKER") + "  " + phaseLabel(s),
		RenderStatus(e, s),
		RenderLedger(s),
		RenderHand(s, -1),
	}
	if p, ok := e.Preview(s); ok {
		sections = append(sections, RenderPreview(p))
	}
	sections = append(sections, "Items:\n"+RenderOwned(s.Owned))
	if len(s.Offers) > 0 {
		sections = append(sections, "Shop:\n"+RenderOffers(s.Offers, s.TotalScore))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func phaseLabel(s *game.State) string {
	switch s.Phase() {
	case game.PhaseWon:
		return SuccessStyle.Render("YOU WIN")
	case game.PhaseLost:
		return ErrorStyle.Render("GAME OVER")
	case game.PhaseNotStarted:
		return InfoStyle.Render("not started")
	case game.PhaseConfirmed:
		return InfoStyle.Render("confirmed")
	}
	return ""
}

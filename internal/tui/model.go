// Package tui is the interactive terminal front end.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/store"
)

const maxLogLines = 500

// Config wires a model to a game.
type Config struct {
	Engine *game.Engine
	State  *game.State
	// Store, if set, receives the state after every successful move.
	Store     store.Store
	SessionID string
	Logger    *log.Logger
}

// eventMsg carries an engine event into the update loop.
type eventMsg struct{ event game.GameEvent }

// Model is the bubbletea model for a single game.
type Model struct {
	engine    *game.Engine
	state     *game.State
	store     store.Store
	sessionID string
	logger    *log.Logger
	formatter *game.EventFormatter

	events chan game.GameEvent
	ctx    context.Context

	cursor   int
	status   string
	failed   bool
	gameLog  []string
	logView  viewport.Model
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a model and subscribes it to the engine's events.
func NewModel(cfg Config) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	state := cfg.State
	if state == nil {
		state = cfg.Engine.NewState()
	}
	m := &Model{
		engine:    cfg.Engine,
		state:     state,
		store:     cfg.Store,
		sessionID: cfg.SessionID,
		logger:    logger.WithPrefix("tui"),
		formatter: game.NewEventFormatter(game.FormattingOptions{ShowCards: true}),
		events:    make(chan game.GameEvent, 256),
		ctx:       context.Background(),
		logView:   viewport.New(80, 8),
		help:      help.New(),
	}
	cfg.Engine.GetEventBus().Subscribe(m)
	return m
}

// OnEvent queues engine events for the update loop. It may be called from
// the reveal timer, so it only touches the channel.
func (m *Model) OnEvent(event game.GameEvent) {
	select {
	case m.events <- event:
	default:
	}
}

// State returns the game being played.
func (m *Model) State() *game.State {
	return m.state
}

// Init starts listening for engine events.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-m.events}
	}
}

// Update handles key presses, window resizes and engine events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logView.Width = max(msg.Width-4, 10)

	case eventMsg:
		m.addLog(m.formatter.Format(msg.event))
		return m, m.waitForEvent()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.handleKey(msg)
		m.drainEvents()

	default:
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	e, s := m.engine, m.state
	switch {
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, keys.ScrollUp):
		m.logView.ScrollUp(1)
	case key.Matches(msg, keys.ScrollDown):
		m.logView.ScrollDown(1)
	case key.Matches(msg, keys.Toggle):
		if m.cursor < len(s.Hand) {
			m.apply("", e.Toggle(s, s.Hand[m.cursor].ID))
		}
	case key.Matches(msg, keys.Confirm):
		if !s.Started {
			m.apply("Game started", e.Start(s))
			return
		}
		play, err := e.Confirm(s)
		m.apply(m.formatter.FormatPlay(play), err)
	case key.Matches(msg, keys.Next):
		m.next()
	case key.Matches(msg, keys.Refresh):
		m.apply("Shop refreshed", e.RefreshShop(s))
	case key.Matches(msg, keys.Buy):
		i := int(msg.Runes[0] - '1')
		if i >= len(s.Offers) {
			m.setError(fmt.Errorf("there is no offer %d", i+1))
			return
		}
		item, err := e.Buy(s, s.Offers[i].ID)
		m.apply("Bought "+item.Name, err)
	case key.Matches(msg, keys.Sell):
		if len(s.Owned) == 0 {
			m.setError(errors.New("no items to sell"))
			return
		}
		item, err := e.Sell(s, s.Owned[len(s.Owned)-1].ID)
		m.apply("Sold "+item.Name, err)
	case key.Matches(msg, keys.Reset):
		e.Reset(s)
		m.cursor = 0
		m.gameLog = nil
		m.logView.SetContent("")
		m.apply("Game reset", nil)
	}
}

// next advances to the next subround, or the next round after the last.
func (m *Model) next() {
	e, s := m.engine, m.state
	if !s.Started {
		m.apply("Game started", e.Start(s))
		return
	}
	if s.Subround < e.SubroundsPerRound(s) {
		m.apply(fmt.Sprintf("Subround %d", s.Subround+1), e.AdvanceSubround(s))
		return
	}
	m.apply(fmt.Sprintf("Round %d", s.Round+1), e.AdvanceRound(s))
}

func (m *Model) moveCursor(delta int) {
	n := len(m.state.Hand)
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// apply records the outcome of a move and saves the game after a success.
func (m *Model) apply(status string, err error) {
	if err != nil {
		m.setError(err)
		return
	}
	m.cursor = min(m.cursor, max(len(m.state.Hand)-1, 0))
	m.status, m.failed = status, false

	if m.store == nil {
		return
	}
	if err := m.store.Save(m.ctx, m.sessionID, m.state); err != nil {
		m.logger.Error("Failed to save game", "session", m.sessionID, "error", err)
		m.setError(fmt.Errorf("save failed: %w", err))
	}
}

func (m *Model) setError(err error) {
	m.status, m.failed = err.Error(), true
}

// drainEvents logs events published synchronously by the last move.
func (m *Model) drainEvents() {
	for {
		select {
		case ev := <-m.events:
			m.addLog(m.formatter.Format(ev))
		default:
			return
		}
	}
}

func (m *Model) addLog(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
	m.logView.SetContent(strings.Join(m.gameLog, "\n"))
	m.logView.GotoBottom()
}

// View renders the game screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	e, s := m.engine, m.state

	header := HeaderStyle.Render("WILD POKER") + "  " + phaseLabel(s)
	table := []string{
		RenderStatus(e, s),
		RenderLedger(s),
		"",
		RenderHand(s, m.cursor),
	}
	if p, ok := e.Preview(s); ok {
		table = append(table, RenderPreview(p))
	} else if s.Started && !s.GameOver {
		table = append(table, InfoStyle.Render(fmt.Sprintf("select %d more", 5-len(s.Selected))))
	}

	side := lipgloss.JoinHorizontal(lipgloss.Top,
		PaneStyle.Render("Items\n"+RenderOwned(s.Owned)),
		PaneStyle.Render("Shop\n"+RenderOffers(s.Offers, s.TotalScore)),
	)

	status := StatusStyle.Render(m.status)
	if m.failed {
		status = ErrorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		PaneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, table...)),
		side,
		PaneStyle.Render(m.logView.View()),
		status,
		m.help.View(keys),
	)
}

// Run plays the game in the terminal until the user quits.
func Run(ctx context.Context, cfg Config) (*game.State, error) {
	m := NewModel(cfg)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m.state, err
	}
	return m.state, nil
}

package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/gameid"
	"github.com/lox/wildpoker/internal/randutil"
	"github.com/lox/wildpoker/internal/store"
)

// ErrSessionNotFound is returned for ids with no live or saved game.
var ErrSessionNotFound = errors.New("session not found")

// Session is one game: its state, the engine driving it and the websocket
// connections watching it. mu serialises every read and write of state.
type Session struct {
	ID string

	mu     sync.Mutex
	engine *game.Engine
	state  *game.State

	connMu sync.RWMutex
	conns  map[*Connection]struct{}
}

// OnEvent forwards engine events to every attached connection.
func (s *Session) OnEvent(event game.GameEvent) {
	msg, err := NewEventMessage(event)
	if err != nil {
		return
	}
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	for conn := range s.conns {
		_ = conn.SendMessage(msg)
	}
}

func (s *Session) attach(c *Connection) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.conns[c] = struct{}{}
}

func (s *Session) detach(c *Connection) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	delete(s.conns, c)
}

// Snapshot returns a view of the session safe to serialise.
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() SessionView {
	v := SessionView{
		ID:                s.ID,
		Phase:             s.state.Phase(),
		State:             s.state.Clone(),
		SubroundsPerRound: s.engine.SubroundsPerRound(s.state),
		TotalRounds:       s.engine.TotalRounds(s.state),
		HandSize:          s.engine.HandSize(s.state),
		Threshold:         s.engine.Threshold(s.state),
		Capacity:          s.engine.Capacity(s.state),
	}
	if p, ok := s.engine.Preview(s.state); ok {
		v.Preview = &p
	}
	return v
}

// SessionView is the JSON shape of a session returned to clients.
type SessionView struct {
	ID                string        `json:"id"`
	Phase             game.Phase    `json:"phase"`
	State             *game.State   `json:"state"`
	SubroundsPerRound int           `json:"subroundsPerRound"`
	TotalRounds       int           `json:"totalRounds"`
	HandSize          int           `json:"handSize"`
	Threshold         int           `json:"threshold"`
	Capacity          int           `json:"capacity"`
	Preview           *game.Preview `json:"preview,omitempty"`
}

// SessionManager holds live sessions and loads saved ones on demand.
type SessionManager struct {
	rules  game.Rules
	store  store.Store
	ids    *gameid.Generator
	seed   int64
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	created  int
}

// NewSessionManager creates a manager saving through st. A zero seed gives
// every session a time-based RNG.
func NewSessionManager(rules game.Rules, st store.Store, seed int64, logger *log.Logger) *SessionManager {
	return &SessionManager{
		rules:    rules,
		store:    st,
		ids:      gameid.NewGenerator(nil),
		seed:     seed,
		logger:   logger.WithPrefix("sessions"),
		sessions: make(map[string]*Session),
	}
}

func (m *SessionManager) newSession(id string, state func(*game.Engine) *game.State) *Session {
	seed := int64(0)
	if m.seed != 0 {
		seed = randutil.Derive(m.seed, m.created)
	}
	m.created++

	s := &Session{ID: id, conns: make(map[*Connection]struct{})}
	bus := game.NewEventBus()
	bus.Subscribe(s)
	s.engine = game.NewEngine(m.rules, randutil.New(seed), m.logger, game.WithEventBus(bus))
	s.state = state(s.engine)
	m.sessions[id] = s
	return s
}

// Create starts a new unstarted game and saves it.
func (m *SessionManager) Create(ctx context.Context) (*Session, error) {
	id, err := m.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	m.mu.Lock()
	s := m.newSession(id, func(e *game.Engine) *game.State { return e.NewState() })
	m.mu.Unlock()

	if err := m.store.Save(ctx, id, s.state); err != nil {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, fmt.Errorf("save session %s: %w", id, err)
	}
	m.logger.Info("Session created", "id", id)
	return s, nil
}

// Get returns the live session for id, loading it from the store if needed.
func (m *SessionManager) Get(ctx context.Context, id string) (*Session, error) {
	if err := gameid.Validate(id); err != nil {
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	state, err := m.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	m.logger.Debug("Session restored", "id", id)
	return m.newSession(id, func(*game.Engine) *game.State { return state }), nil
}

// Mutate runs fn against the session's state under its lock and saves the
// result. Validation failures leave the state untouched and skip the save.
// A failed save rolls the state back to what was last saved.
func (m *SessionManager) Mutate(ctx context.Context, id string, fn func(*game.Engine, *game.State) error) (SessionView, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.state.Clone()
	if err := fn(s.engine, s.state); err != nil {
		return SessionView{}, err
	}
	if err := m.store.Save(ctx, id, s.state); err != nil {
		*s.state = *before
		m.logger.Error("Failed to save session", "id", id, "error", err)
		return SessionView{}, fmt.Errorf("save session %s: %w", id, err)
	}
	return s.view(), nil
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

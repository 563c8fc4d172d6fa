package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/wildpoker/internal/config"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/gameid"
	"github.com/lox/wildpoker/internal/randutil"
	"github.com/lox/wildpoker/internal/store"
	"github.com/lox/wildpoker/internal/tui"
)

// PlayCmd runs the interactive game
type PlayCmd struct {
	Session string `arg:"" optional:"" help:"Session id to resume (a new game when omitted)"`
	Seed    int64  `help:"RNG seed (overrides config, 0 for config or random)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	e, err := setup(g)
	if err != nil {
		return err
	}
	defer e.close()
	if e.cfg.Log.File == "" {
		// Log lines would tear the full screen UI.
		e.logger.SetOutput(io.Discard)
	}

	ctx, cancel := signalContext(e.logger)
	defer cancel()

	st, err := store.Open(ctx, e.cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	engine, state, id, err := c.load(ctx, e.cfg, st, e.logger)
	if err != nil {
		return err
	}
	if err := st.Save(ctx, id, state); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	final, err := tui.Run(ctx, tui.Config{
		Engine:    engine,
		State:     state,
		Store:     st,
		SessionID: id,
		Logger:    e.logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, tui.Summary(engine, final))
	fmt.Fprintf(os.Stdout, "Session %s saved\n", id)
	return nil
}

// load resumes the named session or creates a new one.
func (c *PlayCmd) load(ctx context.Context, cfg *config.Config, st store.Store, logger *log.Logger) (*game.Engine, *game.State, string, error) {
	rules, err := cfg.GameRules()
	if err != nil {
		return nil, nil, "", err
	}
	seed := c.Seed
	if seed == 0 {
		seed = cfg.Seed()
	}
	engine := game.NewEngine(rules, randutil.New(seed), logger)

	if c.Session == "" {
		id, err := gameid.Generate()
		if err != nil {
			return nil, nil, "", err
		}
		logger.Info("New game", "session", id, "seed", seed)
		return engine, engine.NewState(), id, nil
	}

	state, err := st.Load(ctx, c.Session)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, "", fmt.Errorf("no saved game %s", c.Session)
	}
	if err != nil {
		return nil, nil, "", err
	}
	logger.Info("Resuming game", "session", c.Session, "round", state.Round)
	return engine, state, c.Session, nil
}

// ShowCmd prints a saved game
type ShowCmd struct {
	Session string `arg:"" help:"Session id"`
}

func (c *ShowCmd) Run(g *Globals) error {
	e, err := setup(g)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	st, err := store.Open(ctx, e.cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	state, err := st.Load(ctx, c.Session)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.Session, err)
	}
	rules, err := e.cfg.GameRules()
	if err != nil {
		return err
	}
	engine := game.NewEngine(rules, randutil.New(1), e.logger)
	fmt.Fprint(os.Stdout, tui.Summary(engine, state))
	return nil
}

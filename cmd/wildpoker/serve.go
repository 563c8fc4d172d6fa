package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lox/wildpoker/internal/server"
	"github.com/lox/wildpoker/internal/store"
)

// ServeCmd runs the session server
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	e, err := setup(g)
	if err != nil {
		return err
	}
	defer e.close()

	rules, err := e.cfg.GameRules()
	if err != nil {
		return err
	}
	if !g.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signalContext(e.logger)
	defer cancel()

	st, err := store.Open(ctx, e.cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	addr := c.Addr
	if addr == "" {
		addr = e.cfg.ServerAddress()
	}

	e.logger.Info("Starting wildpoker server",
		"address", addr,
		"store", e.cfg.Store.Driver,
		"rounds", rules.TotalRounds,
		"subrounds", rules.SubroundsPerRound,
		"origins", e.cfg.Server.AllowedOrigins)

	srv := server.NewServer(server.Config{
		Rules:          rules,
		Store:          st,
		Seed:           e.cfg.Rules.Seed,
		AllowedOrigins: e.cfg.Server.AllowedOrigins,
		Logger:         e.logger,
	})
	return srv.ListenAndServe(ctx, addr)
}

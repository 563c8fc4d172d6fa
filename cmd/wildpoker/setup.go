package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/wildpoker/internal/config"
	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/shop"
	"github.com/muesli/termenv"
)

// env is what a command needs after globals are applied.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	close  func()
}

// setup loads configuration and builds the logger. Logs go to the
// configured file when set, else stderr.
func setup(g *Globals) (*env, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	out := io.Writer(os.Stderr)
	cleanup := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, cleanup = f, func() { _ = f.Close() }
	}

	level := cfg.LogLevel()
	if g.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return &env{cfg: cfg, logger: logger, close: cleanup}, nil
}

// signalContext is cancelled on interrupt signals.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}

// ownedItems builds an item set from catalog ids, priced at base price.
func ownedItems(ids []string) (items.Set, error) {
	var set items.Set
	for _, id := range ids {
		id = strings.TrimSpace(id)
		tpl, ok := items.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown item %q", id)
		}
		set = append(set, items.Offer{Template: tpl, Price: tpl.BasePrice, SellPrice: shop.SellPrice(tpl.BasePrice)}.Item())
	}
	return set, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lox/wildpoker/internal/fileutil"
	"github.com/lox/wildpoker/internal/history"
	"github.com/lox/wildpoker/internal/store"
)

// HistoryCmd is the root command for game histories
type HistoryCmd struct {
	Export HistoryExportCmd `cmd:"" help:"Export a saved game as a TOML history"`
	Render HistoryRenderCmd `cmd:"" help:"Print the plays in a TOML history file"`
}

// HistoryExportCmd writes a saved game's history
type HistoryExportCmd struct {
	Session string `arg:"" help:"Session id"`
	Out     string `short:"o" type:"path" help:"Output file (stdout when omitted)"`
}

func (c *HistoryExportCmd) Run(g *Globals) error {
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

	rec := history.FromState(c.Session, state, time.Now())
	if c.Out == "" {
		return history.Encode(os.Stdout, rec)
	}
	data, err := history.EncodeToBytes(rec)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(c.Out, data, 0o644); err != nil {
		return err
	}
	e.logger.Info("History written", "file", c.Out, "plays", len(rec.Plays))
	return nil
}

// HistoryRenderCmd prints a history file
type HistoryRenderCmd struct {
	File  string `arg:"" type:"existingfile" help:"Path to a history file"`
	Limit int    `help:"Maximum number of plays to print (0 = all)"`
}

func (c *HistoryRenderCmd) Run(g *Globals) error {
	f, err := os.Open(filepath.Clean(c.File))
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := history.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", c.File, err)
	}

	fmt.Fprintf(os.Stdout, "Session %s", rec.Session)
	if rec.Outcome != "" {
		fmt.Fprintf(os.Stdout, " (%s)", rec.Outcome)
	}
	fmt.Fprintf(os.Stdout, ": round %d, score %d\n", rec.Round, rec.TotalScore)

	plays := rec.Plays
	if c.Limit > 0 && c.Limit < len(plays) {
		plays = plays[:c.Limit]
	}
	for _, p := range plays {
		fmt.Fprintf(os.Stdout, "R%d.%d %-16s %v %d pts x%g = %d (total %d)\n",
			p.Round, p.Subround, p.Category, p.Cards, p.Points, p.Multiplier, p.Score, p.Total)
	}
	return nil
}

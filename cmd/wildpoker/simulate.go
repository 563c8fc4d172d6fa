package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/wildpoker/internal/simulator"
)

// SimulateCmd plays automated games
type SimulateCmd struct {
	Games    int           `default:"1000" help:"Number of games to simulate"`
	Seed     int64         `default:"0" help:"RNG seed (0 for config or random)"`
	Workers  int           `default:"0" help:"Parallel games (0 for GOMAXPROCS)"`
	Reserve  float64       `default:"1.0" help:"Keep this fraction of the next threshold when shopping"`
	Timeout  time.Duration `default:"0s" help:"Abort after this long (0 for no limit)"`
	Progress bool          `help:"Print a progress dot every 2.5% of games"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	e, err := setup(g)
	if err != nil {
		return err
	}
	defer e.close()

	rules, err := e.cfg.GameRules()
	if err != nil {
		return err
	}
	seed := c.Seed
	if seed == 0 {
		seed = e.cfg.Seed()
	}

	ctx, cancel := signalContext(e.logger)
	defer cancel()

	cfg := simulator.Config{
		Games:   c.Games,
		Seed:    seed,
		Workers: c.Workers,
		Rules:   rules,
		Reserve: c.Reserve,
		Timeout: c.Timeout,
		Logger:  e.logger,
	}
	if c.Progress {
		cfg.Progress = progressDots()
	}

	e.logger.Info("Starting simulation", "games", c.Games, "seed", seed, "reserve", c.Reserve)
	start := time.Now()
	stats, err := simulator.New(cfg).Run(ctx)
	if c.Progress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats)
	fmt.Fprintf(os.Stdout, "\nCompleted in %s (seed %d)\n", time.Since(start).Round(time.Millisecond), seed)
	return nil
}

// progressDots prints 40 dots over the run. Calls arrive from worker
// goroutines, but done values are distinct so each threshold prints once.
func progressDots() func(done, total int) {
	return func(done, total int) {
		if done*40/total > (done-1)*40/total {
			fmt.Fprint(os.Stderr, ".")
		}
	}
}

// Package simulator plays automated games in parallel and aggregates the
// results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/hand"
	"github.com/lox/wildpoker/internal/randutil"
	"github.com/lox/wildpoker/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Seed    int64
	Workers int
	Rules   game.Rules
	// Reserve is the fraction of the next round's threshold the bot keeps
	// when shopping.
	Reserve float64
	Timeout time.Duration
	Logger  *log.Logger
	// Progress, if set, is called after each finished game.
	Progress func(done, total int)
}

// Simulator runs automated games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Rules.RevealDelay = 0
	return &Simulator{config: config}
}

// Run plays every game and returns aggregate statistics. Game i uses a seed
// derived from the base seed, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if err := s.config.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	results := make([]statistics.GameResult, s.config.Games)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range results {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			res, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			if s.config.Progress != nil {
				s.config.Progress(int(done.Add(1)), s.config.Games)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// PlayGame plays a single game with the given seed.
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	return s.playGame(ctx, seed)
}

func (s *Simulator) playGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	e := game.NewEngine(s.config.Rules, randutil.New(seed), s.config.Logger)
	st := e.NewState()
	res := statistics.GameResult{Seed: seed}

	if err := e.Start(st); err != nil {
		return res, err
	}
	for !st.GameOver {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		cards, _ := BestSelection(st.Hand, st.Owned)
		for _, c := range cards {
			if err := e.Toggle(st, c.ID); err != nil {
				return res, err
			}
		}
		play, err := e.Confirm(st)
		if err != nil {
			return res, err
		}
		res.Categories = append(res.Categories, play.Category)
		if st.GameOver {
			break
		}

		if st.Subround < e.SubroundsPerRound(st) {
			if err := e.AdvanceSubround(st); err != nil {
				return res, err
			}
			continue
		}

		reserve := int(s.config.Reserve * float64(e.Rules().Threshold(st.Round+1)))
		spent, err := shop(e, st, reserve)
		if err != nil {
			return res, err
		}
		res.Spent += spent
		// A subround item bought now extends the round in progress.
		if st.Subround < e.SubroundsPerRound(st) {
			if err := e.AdvanceSubround(st); err != nil {
				return res, err
			}
			continue
		}
		if err := e.AdvanceRound(st); err != nil {
			return res, err
		}
	}

	res.Won = st.Outcome == game.OutcomeWon
	res.FinalScore = st.TotalScore
	res.RoundReached = st.Round
	res.Subrounds = len(st.Plays)
	for _, it := range st.Owned {
		res.Items = append(res.Items, it.ID)
	}
	s.config.Logger.Debug("Game finished", "seed", seed, "outcome", st.Outcome, "round", st.Round, "score", st.TotalScore)
	return res, nil
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", stats.Wins, stats.WinRate()*100)

	fmt.Fprintf(w, "\n=== FINAL SCORE ===\n")
	fmt.Fprintf(w, "Mean: %.1f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.1f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.1f, %.1f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Best: %d (seed %d)\n", stats.BestScore, stats.BestSeed)

	fmt.Fprintf(w, "\n=== ROUNDS REACHED ===\n")
	for round := 1; len(stats.RoundsReached) > 0 && round <= maxKey(stats.RoundsReached); round++ {
		if n := stats.RoundsReached[round]; n > 0 {
			fmt.Fprintf(w, "Round %2d: %d games (%.1f%%)\n", round, n, float64(n)/float64(stats.Games)*100)
		}
	}

	fmt.Fprintf(w, "\n=== CATEGORIES ===\n")
	for i, n := range stats.CategoryCounts {
		if n > 0 {
			c := hand.Categories[i]
			fmt.Fprintf(w, "%-16s %6d (%.1f%%)\n", c, n, stats.CategoryShare(c)*100)
		}
	}
	if stats.Spent > 0 {
		fmt.Fprintf(w, "\nShop spend: %d total, %.1f per game\n", stats.Spent, float64(stats.Spent)/float64(stats.Games))
	}
}

func maxKey(m map[int]int) int {
	best := 0
	for k := range m {
		best = max(best, k)
	}
	return best
}

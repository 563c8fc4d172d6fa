package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/wildpoker/internal/hand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed         int64           // RNG seed for this game (for replay)
	Won          bool            // Cleared the final round
	FinalScore   int             // Total score when the game ended
	RoundReached int             // Round in progress when the game ended
	Subrounds    int             // Subrounds confirmed
	Spent        int             // Score spent in the shop
	Items        []string        // Items owned at the end
	Categories   []hand.Category // Category of every confirmed subround
}

// Statistics aggregates simulated games
type Statistics struct {
	Games  int
	Wins   int
	Scores []float64 // Final scores, kept for quantiles

	Subrounds       int
	Spent           int
	RoundsReached   map[int]int
	CategoryCounts  [len(hand.Categories)]int
	ItemCounts      map[string]int
	BestScore       int
	BestSeed        int64
	WinningSubtotal int // Sum of final scores over won games
}

// Add incorporates a game result into the statistics
func (s *Statistics) Add(r GameResult) {
	if s.RoundsReached == nil {
		s.RoundsReached = make(map[int]int)
	}
	if s.ItemCounts == nil {
		s.ItemCounts = make(map[string]int)
	}

	s.Games++
	s.Scores = append(s.Scores, float64(r.FinalScore))
	s.Subrounds += r.Subrounds
	s.Spent += r.Spent
	s.RoundsReached[r.RoundReached]++
	for _, c := range r.Categories {
		if c.Valid() {
			s.CategoryCounts[c]++
		}
	}
	for _, id := range r.Items {
		s.ItemCounts[id]++
	}
	if r.Won {
		s.Wins++
		s.WinningSubtotal += r.FinalScore
	}
	if s.Games == 1 || r.FinalScore > s.BestScore {
		s.BestScore = r.FinalScore
		s.BestSeed = r.Seed
	}
}

// Merge folds other into s. Scores keep the order they were added in.
func (s *Statistics) Merge(other *Statistics) {
	if s.RoundsReached == nil {
		s.RoundsReached = make(map[int]int)
	}
	if s.ItemCounts == nil {
		s.ItemCounts = make(map[string]int)
	}
	if other.Games > 0 && (s.Games == 0 || other.BestScore > s.BestScore) {
		s.BestScore = other.BestScore
		s.BestSeed = other.BestSeed
	}
	s.Games += other.Games
	s.Wins += other.Wins
	s.Scores = append(s.Scores, other.Scores...)
	s.Subrounds += other.Subrounds
	s.Spent += other.Spent
	s.WinningSubtotal += other.WinningSubtotal
	for round, n := range other.RoundsReached {
		s.RoundsReached[round] += n
	}
	for i, n := range other.CategoryCounts {
		s.CategoryCounts[i] += n
	}
	for id, n := range other.ItemCounts {
		s.ItemCounts[id] += n
	}
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Mean returns the mean final score
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return stat.Mean(s.Scores, nil)
}

// StdDev returns the sample standard deviation of final scores
func (s *Statistics) StdDev() float64 {
	if s.Games < 2 {
		return 0
	}
	return stat.StdDev(s.Scores, nil)
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return stat.StdErr(s.StdDev(), float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// final score using Student's t distribution.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	if s.Games < 2 {
		return mean, mean
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(s.Games - 1)}.Quantile(0.975)
	margin := t * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median final score
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the empirical quantile of final scores (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Scores) == 0 {
		return 0
	}
	p = math.Min(math.Max(p, 0), 1)
	sorted := slices.Clone(s.Scores)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// CategoryShare returns the fraction of confirmed subrounds scored as c
func (s *Statistics) CategoryShare(c hand.Category) float64 {
	if s.Subrounds == 0 || !c.Valid() {
		return 0
	}
	return float64(s.CategoryCounts[c]) / float64(s.Subrounds)
}

// Validate checks the aggregate counters agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Scores) != s.Games {
		return fmt.Errorf("scores length (%d) does not match games count (%d)", len(s.Scores), s.Games)
	}
	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceed games (%d)", s.Wins, s.Games)
	}

	reached := 0
	for _, n := range s.RoundsReached {
		reached += n
	}
	if reached != s.Games {
		return fmt.Errorf("rounds reached total (%d) does not match games (%d)", reached, s.Games)
	}

	categorised := 0
	for _, n := range s.CategoryCounts {
		categorised += n
	}
	if categorised != s.Subrounds {
		return fmt.Errorf("category total (%d) does not match subrounds (%d)", categorised, s.Subrounds)
	}
	return nil
}

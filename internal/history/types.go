package history

import "time"

// Record is the exported history of one game.
type Record struct {
	Session    string         `toml:"session"`
	Outcome    string         `toml:"outcome,omitempty"`
	Round      int            `toml:"round"`
	TotalScore int            `toml:"total_score"`
	Items      []string       `toml:"items,omitempty"`
	OneTime    []string       `toml:"one_time_items,omitempty"`
	Time       string         `toml:"time,omitempty"`
	Metadata   map[string]any `toml:"metadata,omitempty"`
	Plays      []Play         `toml:"play"`

	Timestamp time.Time `toml:"-"`
}

// Play is one confirmed subround in compact notation.
type Play struct {
	Round      int      `toml:"round"`
	Subround   int      `toml:"subround"`
	Cards      []string `toml:"cards"`
	Category   string   `toml:"category"`
	Multiplier float64  `toml:"multiplier"`
	Points     int      `toml:"points"`
	Score      int      `toml:"score"`
	Total      int      `toml:"total"`
}

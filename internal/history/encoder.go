// Package history exports finished or in-progress games as TOML documents.
package history

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lox/wildpoker/internal/game"
)

// FromState builds a record from a game document.
func FromState(session string, s *game.State, at time.Time) *Record {
	r := &Record{
		Session:    session,
		Outcome:    string(s.Outcome),
		Round:      s.Round,
		TotalScore: s.TotalScore,
		OneTime:    append([]string(nil), s.OneTime...),
		Plays:      make([]Play, 0, len(s.Plays)),
		Timestamp:  at,
	}
	for _, it := range s.Owned {
		r.Items = append(r.Items, it.ID)
	}
	if !at.IsZero() {
		r.Time = at.UTC().Format(time.RFC3339)
	}
	for _, p := range s.Plays {
		r.Plays = append(r.Plays, Play{
			Round:      p.Round,
			Subround:   p.Subround,
			Cards:      FormatCards(p.Cards),
			Category:   p.Category.String(),
			Multiplier: p.Multiplier,
			Points:     p.Points,
			Score:      p.Score,
			Total:      p.Total,
		})
	}
	return r
}

// Encode writes the record to w in TOML format.
func Encode(w io.Writer, r *Record) error {
	if r == nil {
		return fmt.Errorf("history: record is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(r)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(r *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a record written by Encode.
func Decode(rd io.Reader) (*Record, error) {
	var r Record
	if _, err := toml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if r.Time != "" {
		ts, err := time.Parse(time.RFC3339, r.Time)
		if err != nil {
			return nil, fmt.Errorf("history: time: %w", err)
		}
		r.Timestamp = ts
	}
	return &r, nil
}

// Package gameid issues session identifiers: UUIDv7 values encoded as 26
// character Crockford base32 strings, so ids sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id. 26 characters carry 130 bits, the top two of
// which are always zero.
const Length = 26

// Generator creates ids, optionally from a fixed entropy source.
type Generator struct {
	entropy io.Reader
}

// NewGenerator returns a generator reading random bits from entropy, or from
// crypto/rand when entropy is nil.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new session id.
func Generate() (string, error) {
	return NewGenerator(nil).Generate()
}

// Generate creates a new session id.
func (g *Generator) Generate() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if g.entropy != nil {
		id, err = uuid.NewV7FromReader(g.entropy)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return Encode(id), nil
}

// Encode renders a UUID as a 26 character id.
func Encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		for k := 0; k < 5; k++ {
			v = v<<1 | bit(id, i*5-2+k)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// Parse decodes an id produced by Encode.
func Parse(s string) (uuid.UUID, error) {
	if err := Validate(s); err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	for i := 0; i < Length; i++ {
		v := byte(strings.IndexByte(alphabet, s[i]))
		for k := 0; k < 5; k++ {
			n := i*5 - 2 + k
			if n < 0 || (v>>(4-k))&1 == 0 {
				continue
			}
			id[n/8] |= 1 << (7 - n%8)
		}
	}
	return id, nil
}

func bit(id uuid.UUID, n int) byte {
	if n < 0 {
		return 0
	}
	return (id[n/8] >> (7 - n%8)) & 1
}

// Validate checks if a session id is well formed (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// The first character only carries three bits.
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}

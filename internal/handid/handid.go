// Package handid generates sortable identifiers for hands.
//
// An ID is a UUIDv7 written as 26 characters of Crockford base32, the same
// layout TypeID uses, so IDs sort by creation time as plain strings.
package handid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

// Generator creates IDs from a random source.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto randomness.
func NewGenerator(rand io.Reader) *Generator {
	return &Generator{rand: rand}
}

// New returns a fresh hand ID using crypto randomness.
func New() string {
	return NewGenerator(nil).New()
}

// New returns a fresh hand ID.
func (g *Generator) New() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate hand id: " + err.Error())
	}
	return Encode(id)
}

// Encode writes a UUID as 26 base32 characters, two zero bits prepended.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			v <<= 1
			if p := i*5 + b - 2; p >= 0 && id[p/8]&(0x80>>(p%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Parse decodes an encoded ID back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != Length {
		return id, fmt.Errorf("hand ID must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return id, fmt.Errorf("hand ID first character must be 0-7, got %c", s[0])
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
		for b := 0; b < 5; b++ {
			p := i*5 + b - 2
			if p >= 0 && v&(0x10>>b) != 0 {
				id[p/8] |= 0x80 >> (p % 8)
			}
		}
	}
	return id, nil
}

// Validate checks that s is a well formed hand ID carrying a version 7 UUID.
func Validate(s string) error {
	id, err := Parse(s)
	if err != nil {
		return err
	}
	if id.Version() != 7 {
		return fmt.Errorf("hand ID holds a version %d UUID, want 7", id.Version())
	}
	return nil
}

// Package idgen produces entity identifiers of the form prefix + random suffix.
//
// Identifiers are unique enough for a single process lifetime. They carry no
// cross-process or cryptographic guarantee and are never persisted.
package idgen

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// SuffixLength is the number of base-36 characters appended to the prefix
const SuffixLength = 9

// Generator hands out identifiers scoped by a kind prefix
type Generator interface {
	Generate(prefix string) string
}

// RandomGenerator derives suffixes from random UUIDs
type RandomGenerator struct {
	source func() uuid.UUID
}

// New returns a generator backed by uuid.New
func New() *RandomGenerator {
	return &RandomGenerator{source: uuid.New}
}

// NewWithSource returns a generator that draws randomness from source
func NewWithSource(source func() uuid.UUID) *RandomGenerator {
	return &RandomGenerator{source: source}
}

// Generate returns prefix followed by SuffixLength lowercase alphanumerics
func (g *RandomGenerator) Generate(prefix string) string {
	u := g.source()
	digits := new(big.Int).SetBytes(u[:]).Text(36)
	if len(digits) < SuffixLength {
		digits = strings.Repeat("0", SuffixLength-len(digits)) + digits
	}
	return prefix + digits[len(digits)-SuffixLength:]
}

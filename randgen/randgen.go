// Package randgen produces the random values the harness synthesizes task
// records from. Draws come from a seeded PRNG so a failing run can be
// replayed from its logged seed; cryptographic quality is not a goal.
package randgen

import (
	"fmt"
	"math/rand"
	"time"

	"tasksoak/domain"
)

// Alphabet is the fixed 90-symbol pool titles and descriptions draw from:
// letters, digits, common punctuation and space.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!#$%&()*+,-./:;<=>?@[]^_{|}" +
	" "

// Generator is a seeded source of task field values. Not safe for
// concurrent use; the harness has exactly one mutator.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// String returns a string of uniformly random length in [minLen, maxLen],
// each character sampled independently from Alphabet.
func (g *Generator) String(minLen, maxLen int) string {
	n := minLen + g.rng.Intn(maxLen-minLen+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = Alphabet[g.rng.Intn(len(Alphabet))]
	}
	return string(b)
}

// Date returns a calendar date formatted DD/MM/YYYY. The year is offset
// uniformly from {-5..+4} around the current year; days stop at 28 to stay
// clear of month-length edge cases.
func (g *Generator) Date() string {
	year := time.Now().Year() + g.rng.Intn(10) - 5
	month := 1 + g.rng.Intn(12)
	day := 1 + g.rng.Intn(28)
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}

// Priority returns a uniformly random priority label.
func (g *Generator) Priority() domain.Priority {
	return domain.Priorities[g.rng.Intn(len(domain.Priorities))]
}

// Float64 exposes a uniform draw in [0,1) for probability decisions.
func (g *Generator) Float64() float64 { return g.rng.Float64() }

// Intn exposes a uniform draw in [0,n).
func (g *Generator) Intn(n int) int { return g.rng.Intn(n) }

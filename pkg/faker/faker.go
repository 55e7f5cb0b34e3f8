// Package faker generates realistic-looking values for factory definitions.
//
// A Faker built with New draws from the global math/rand/v2 source. NewSeeded
// returns a deterministic generator, useful when a test asserts on generated
// values or when a failure must be reproducible.
package faker

import (
	"fmt"
	mathrand "math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Faker produces fake data. It is not safe for concurrent use when seeded.
type Faker struct {
	rng *mathrand.Rand
}

// New returns a Faker backed by the global random source.
func New() *Faker {
	return &Faker{}
}

// NewSeeded returns a deterministic Faker.
func NewSeeded(seed uint64) *Faker {
	return &Faker{rng: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Seeded reports whether the Faker is deterministic.
func (f *Faker) Seeded() bool { return f.rng != nil }

func (f *Faker) intN(n int) int {
	if n <= 0 {
		return 0
	}
	if f.rng != nil {
		return f.rng.IntN(n)
	}
	return mathrand.IntN(n)
}

// IntBetween returns a random int in [lo, hi]. The bounds may be given in any order.
func (f *Faker) IntBetween(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + f.intN(hi-lo+1)
}

// RandomDigit returns a random int in [0, 9].
func (f *Faker) RandomDigit() int {
	return f.intN(10)
}

// Bool returns true or false with equal probability.
func (f *Faker) Bool() bool {
	return f.intN(2) == 1
}

// Word returns a single lorem word.
func (f *Faker) Word() string {
	return Pick(f, loremWords)
}

// Words returns n lorem words.
func (f *Faker) Words(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = f.Word()
	}
	return words
}

// Sentence returns a capitalized sentence of 4 to 8 words ending with a period.
func (f *Faker) Sentence() string {
	words := f.Words(f.IntBetween(4, 8))
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}

// Paragraph returns 3 to 5 sentences.
func (f *Faker) Paragraph() string {
	n := f.IntBetween(3, 5)
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = f.Sentence()
	}
	return strings.Join(sentences, " ")
}

// FirstName returns a first name.
func (f *Faker) FirstName() string {
	return Pick(f, firstNames)
}

// LastName returns a last name.
func (f *Faker) LastName() string {
	return Pick(f, lastNames)
}

// Name returns "First Last".
func (f *Faker) Name() string {
	return f.FirstName() + " " + f.LastName()
}

// UserName returns a lowercase login such as "jane.doe42".
func (f *Faker) UserName() string {
	return fmt.Sprintf("%s.%s%d", strings.ToLower(f.FirstName()), strings.ToLower(f.LastName()), f.intN(100))
}

// Email returns an address on a reserved example domain.
func (f *Faker) Email() string {
	return f.UserName() + "@" + Pick(f, emailDomains)
}

// Company returns a company name.
func (f *Faker) Company() string {
	return Pick(f, companies)
}

// Phone returns a US-style phone number.
func (f *Faker) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", f.IntBetween(100, 999), f.IntBetween(100, 999), f.intN(10000))
}

// Slug returns n lorem words joined by dashes.
func (f *Faker) Slug(n int) string {
	if n <= 0 {
		n = 3
	}
	return strings.Join(f.Words(n), "-")
}

// UUID returns a version 4 UUID string. Seeded fakers produce a
// deterministic sequence.
func (f *Faker) UUID() string {
	if f.rng == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(rngReader{f.rng})
	if err != nil {
		// rngReader never fails
		panic(err)
	}
	return id.String()
}

// Pick returns a random element of items. It panics on an empty slice.
func Pick[T any](f *Faker, items []T) T {
	return items[f.intN(len(items))]
}

type rngReader struct{ rng *mathrand.Rand }

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.IntN(256))
	}
	return len(p), nil
}

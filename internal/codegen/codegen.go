// Package codegen produces the short join codes audiences type in.
package codegen

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	// Alphabet leaves out 0, 1, I and O, which audiences mistype from a projector
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// Length is the number of characters in a session code
	Length = 6
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/KirkDiggler/lectern/internal/codegen Generator

// Generator hands out candidate session codes. Uniqueness is checked by the
// session store, not here.
type Generator interface {
	Generate() string
}

// Random generates codes from a seeded source
type Random struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the code generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new code generator
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Generate returns a random code of Length characters from Alphabet
func (r *Random) Generate() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[r.random.Intn(len(Alphabet))])
	}
	return b.String()
}

// Normalize makes user-typed codes comparable: trimmed and upper case
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether a normalized code could have been generated
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(Alphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}

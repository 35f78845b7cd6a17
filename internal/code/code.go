package code

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/KirkDiggler/grubvote/internal/code Generator

// Length is the number of digits in a session code
const Length = 5

// Generator produces candidate session codes. Uniqueness is enforced by the
// session store, not by the generator.
type Generator interface {
	NewCode() string
}

// Roller generates random numeric codes
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the code roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new code roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// NewCode returns a 5-digit code in the range 10000-99999
func (r *Roller) NewCode() string {
	r.mu.Lock()
	n := r.random.Intn(90000) + 10000
	r.mu.Unlock()

	return fmt.Sprintf("%d", n)
}

// Valid reports whether s has the shape of a session code
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

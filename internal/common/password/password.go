package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_hasher.go github.com/KirkDiggler/grubvote/internal/common/password Hasher

// ErrEmptyPassword is returned when hashing an empty password
var ErrEmptyPassword = errors.New("password cannot be empty")

// Hasher hashes and verifies session passwords
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// Bcrypt implements Hasher with bcrypt
type Bcrypt struct {
	cost int
}

// Config for the bcrypt hasher
type Config struct {
	// Cost defaults to bcrypt.DefaultCost. Tests use bcrypt.MinCost.
	Cost int
}

// NewBcrypt creates a bcrypt hasher
func NewBcrypt(cfg *Config) *Bcrypt {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Cost != 0 {
		cost = cfg.Cost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of plain
func (b *Bcrypt) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash
func (b *Bcrypt) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

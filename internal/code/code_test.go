package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCodeShape(t *testing.T) {
	roller := New(&Config{Seed: 42})

	for i := 0; i < 1000; i++ {
		c := roller.NewCode()
		assert.True(t, Valid(c), "code %q should be 5 numeric digits", c)
	}
}

func TestSeededRollerIsDeterministic(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.NewCode(), b.NewCode())
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12345", true},
		{"00000", true},
		{"1234", false},
		{"123456", false},
		{"12a45", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.in), tt.in)
	}
}

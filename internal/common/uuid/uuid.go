package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/grubvote/internal/common/uuid UUID

// UUID issues opaque identifiers, used as participant tokens
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using random v4 UUIDs
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.NewString()
}

package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/grubvote/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/grubvote/internal/models"
)

// Repository is the registry of live sessions, keyed by code
type Repository interface {
	// CreateSession registers a session. It fails with ErrCodeTaken if the
	// code is already in use; the check and insert are atomic.
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by code
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// ListSessions returns every live session
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}

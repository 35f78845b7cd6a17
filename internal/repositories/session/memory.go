package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/KirkDiggler/grubvote/internal/models"
)

var (
	// ErrSessionNotFound is returned when no live session has the code
	ErrSessionNotFound = errors.New("session not found")

	// ErrCodeTaken is returned when creating a session with a live code
	ErrCodeTaken = errors.New("session code already in use")
)

// memoryRepository keeps sessions in process memory. Sessions are returned
// by pointer: callers serialize access to a session aggregate themselves,
// the repository only guards the registry map.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemory creates an in-memory session registry
func NewMemory() *memoryRepository {
	return &memoryRepository{
		sessions: make(map[string]*models.Session),
	}
}

// CreateSession registers a session under its code
func (r *memoryRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.Code == "" {
		return errors.New("session code cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[input.Session.Code]; exists {
		return ErrCodeTaken
	}
	r.sessions[input.Session.Code] = input.Session

	return nil
}

// GetSession retrieves a session by code
func (r *memoryRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[input.Code]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return s, nil
}

// DeleteSession removes a session from the registry
func (r *memoryRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and code cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[input.Code]; !exists {
		return ErrSessionNotFound
	}
	delete(r.sessions, input.Code)

	return nil
}

// ListSessions returns every live session ordered by code
func (r *memoryRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	r.mu.RLock()
	sessions := make([]*models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Code < sessions[j].Code
	})

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}

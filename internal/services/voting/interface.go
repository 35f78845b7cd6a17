package voting

import (
	"context"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/grubvote/internal/services/voting Service

// Service runs group voting sessions
type Service interface {
	// CreateSession opens a new session with the caller as host
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// UpdateSettings merges a settings patch, host only and before voting
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error)

	// UpdateOptions replaces the whole menu, host only and before voting
	UpdateOptions(ctx context.Context, input *UpdateOptionsInput) (*UpdateOptionsOutput, error)

	// JoinSession adds a participant or reconnects an existing one
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// GetSession returns the caller's view of a session
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// AddUserOptions lets a guest add rows in per-user mode
	AddUserOptions(ctx context.Context, input *AddUserOptionsInput) (*AddUserOptionsOutput, error)

	// StartVoting opens a voting round
	StartVoting(ctx context.Context, input *StartVotingInput) (*StartVotingOutput, error)

	// SubmitRatings records the caller's ratings for the running round
	SubmitRatings(ctx context.Context, input *SubmitRatingsInput) (*SubmitRatingsOutput, error)

	// EndVoting closes the running round and computes the leaderboard
	EndVoting(ctx context.Context, input *EndVotingInput) (*EndVotingOutput, error)

	// ExpireSession destroys a session whose inactivity window has passed
	ExpireSession(ctx context.Context, input *ExpireSessionInput) (*ExpireSessionOutput, error)

	// GenerateMenu replaces the menu with AI suggestions
	GenerateMenu(ctx context.Context, input *GenerateMenuInput) (*GenerateMenuOutput, error)

	// SweepSessions destroys stale sessions regardless of their own timers
	SweepSessions(ctx context.Context, input *SweepSessionsInput) (*SweepSessionsOutput, error)

	// Start schedules the periodic sweep
	Start(ctx context.Context) error

	// Stop cancels the sweep and every session timer
	Stop()
}

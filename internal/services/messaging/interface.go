package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/grubvote/internal/services/messaging Service

// Service is the interface for the messaging service
type Service interface {
	// GetResultsMessage returns the announcement for a finished round
	GetResultsMessage(ctx context.Context, input *GetResultsMessageInput) (*GetResultsMessageOutput, error)

	// GetVotingStartedMessage returns the announcement for a round opening
	GetVotingStartedMessage(ctx context.Context, input *GetVotingStartedMessageInput) (*GetVotingStartedMessageOutput, error)

	// GetExpiredMessage returns the announcement for a session that timed out
	GetExpiredMessage(ctx context.Context, input *GetExpiredMessageInput) (*GetExpiredMessageOutput, error)
}

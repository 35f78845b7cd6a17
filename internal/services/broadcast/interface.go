package broadcast

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/grubvote/internal/services/broadcast Publisher

// Publisher fans session events out to subscribers of a session code
type Publisher interface {
	// Publish projects the session once per subscriber and delivers it.
	// Callers must hold the session's lock for the duration of the call.
	Publish(ctx context.Context, input *PublishInput) error
}

package messaging

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Config contains configuration for the messaging service
type Config struct {
	// Seed makes message selection deterministic, used by tests
	Seed int64
}

// GetResultsMessageInput contains parameters for a results announcement
type GetResultsMessageInput struct {
	// WinnerName is empty when there was nothing to vote on
	WinnerName string

	// Restaurant is where the winner comes from
	Restaurant string

	// Score is the winner's weighted score
	Score float64

	// Voters is how many participants rated the winner
	Voters int

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetResultsMessageOutput contains a results announcement
type GetResultsMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetVotingStartedMessageInput contains parameters for a round opening
type GetVotingStartedMessageInput struct {
	Options      int
	Participants int
	Seconds      int
}

// GetVotingStartedMessageOutput contains a round opening announcement
type GetVotingStartedMessageOutput struct {
	Message string
}

// GetExpiredMessageInput contains parameters for an expiry announcement
type GetExpiredMessageInput struct {
	Code string
}

// GetExpiredMessageOutput contains an expiry announcement
type GetExpiredMessageOutput struct {
	Message string
}

package broadcast

import "github.com/KirkDiggler/grubvote/internal/models"

// EventType names a broadcast event
type EventType string

const (
	// EventState carries a fresh session snapshot
	EventState EventType = "session:state"

	// EventResults carries the leaderboard of a finished round
	EventResults EventType = "session:results"

	// EventExpired tells subscribers the session no longer exists
	EventExpired EventType = "session:expired"
)

// PublishInput contains parameters for publishing an event
type PublishInput struct {
	// Event is the event type
	Event EventType

	// Session is the session the event is about
	Session *models.Session
}

// Message is what a subscriber receives
type Message struct {
	Event   EventType        `json:"type"`
	Code    string           `json:"code"`
	State   *models.Snapshot `json:"state,omitempty"`
	Results *models.Results  `json:"results,omitempty"`
}

// SubscribeInput contains parameters for subscribing to a session
type SubscribeInput struct {
	// Code is the session code. Empty subscribes to every session.
	Code string

	// ViewerToken is the subscriber's participant token, used for projection
	ViewerToken string
}

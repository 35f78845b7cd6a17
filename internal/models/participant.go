package models

import (
	"time"
)

// Restrictions are a participant's dietary constraints
type Restrictions struct {
	// AvoidTags are option tags this participant will not eat. Any option
	// carrying one of them is hidden for everyone.
	AvoidTags []string `json:"avoidTags"`

	// Allergens is free text, display only
	Allergens string `json:"allergens"`

	// Diet is free text, display only
	Diet string `json:"diet"`
}

// Participant represents a person taking part in a session
type Participant struct {
	// Token is the opaque credential identifying this participant
	Token string

	// Name is the display name of the participant
	Name string

	// UserID is set for registered users
	UserID string

	// IsRegistered indicates a registered user
	IsRegistered bool

	// IsHost indicates the session creator
	IsHost bool

	// HasSubmitted indicates ratings were recorded in the current round
	HasSubmitted bool

	// Restrictions are the participant's dietary constraints, if any
	Restrictions *Restrictions

	// SubmittedOptionsCount is how many menu rows this participant added
	SubmittedOptionsCount int

	// JoinedAt is when the participant first joined
	JoinedAt time.Time
}

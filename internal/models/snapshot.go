package models

import (
	"time"
)

// Snapshot is the sanitized view of a session sent to one viewer
type Snapshot struct {
	Code         string       `json:"code"`
	State        SessionState `json:"state"`
	IsVotingOpen bool         `json:"isVotingOpen"`
	HasEnded     bool         `json:"hasEnded"`

	// ViewerIsHost tells the client whether to render host controls
	ViewerIsHost bool `json:"viewerIsHost"`

	Host              HostView            `json:"host"`
	Participants      []*ParticipantView  `json:"participants"`
	SubmittedCount    int                 `json:"submittedCount"`
	BaseOptions       []*Option           `json:"baseOptions"`
	Options           []*Option           `json:"options"`
	GroupRestrictions GroupRestrictions   `json:"groupRestrictions"`
	Settings          Settings            `json:"settings"`
	Results           *Results            `json:"results,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	ExpiresAt         time.Time           `json:"expiresAt"`
	VotingEndsAt      *time.Time          `json:"votingEndsAt,omitempty"`
}

// HostView is the public part of Host
type HostView struct {
	Name         string `json:"name"`
	IsRegistered bool   `json:"isRegistered"`
}

// ParticipantView is a participant as seen by one viewer. Token is only
// populated on the viewer's own entry.
type ParticipantView struct {
	Token                 string        `json:"token,omitempty"`
	Name                  string        `json:"name"`
	IsRegistered          bool          `json:"isRegistered"`
	IsHost                bool          `json:"isHost"`
	IsYou                 bool          `json:"isYou"`
	HasSubmitted          bool          `json:"hasSubmitted"`
	SubmittedOptionsCount int           `json:"submittedOptionsCount"`
	Restrictions          *Restrictions `json:"restrictions,omitempty"`
}

// GroupRestrictions is a display-only union of every participant's
// restrictions
type GroupRestrictions struct {
	AvoidTags []string `json:"avoidTags"`
	Diets     []string `json:"diets"`
}

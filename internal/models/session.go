package models

import (
	"time"
)

// Host identifies the participant who created a session
type Host struct {
	// ParticipantToken is the host's participant token
	ParticipantToken string

	// Name is the host's display name
	Name string

	// UserID is set when the host is a registered user
	UserID string

	// IsRegistered indicates the host is a registered user
	IsRegistered bool
}

// Session is one group voting round, identified by a 5-digit code
type Session struct {
	// Code is the 5-digit numeric session code
	Code string

	// PasswordHash is the hash of the session password
	PasswordHash string

	// Host is the session creator
	Host Host

	// Participants maps participant token to participant
	Participants map[string]*Participant

	// BaseOptions is the unfiltered menu, at most MaxOptions entries
	BaseOptions []*Option

	// Options is BaseOptions with the non-negotiable filter applied
	Options []*Option

	// Ratings maps participant token to option ID to rating
	Ratings map[string]map[int]Rating

	// NextOptionID is the next option ID to hand out. IDs are never reused.
	NextOptionID int

	// IsVotingOpen indicates a voting round is running
	IsVotingOpen bool

	// HasEnded indicates the last voting round has finished
	HasEnded bool

	// Settings are the host-controlled session settings
	Settings Settings

	// Results holds the leaderboard of the last finished round
	Results *Results

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// LastActivityAt is when the inactivity window was last refreshed
	LastActivityAt time.Time

	// ExpiresAt is when the session expires if nothing happens
	ExpiresAt time.Time

	// VotingEndsAt is when the running voting round closes
	VotingEndsAt *time.Time
}

// State returns the lifecycle state of the session
func (s *Session) State() SessionState {
	switch {
	case s.IsVotingOpen:
		return SessionStateVotingOpen
	case s.HasEnded:
		return SessionStateEnded
	default:
		return SessionStateLobby
	}
}

// IsHost reports whether token belongs to the host
func (s *Session) IsHost(token string) bool {
	return token != "" && token == s.Host.ParticipantToken
}

// SessionState represents where a session is in its lifecycle
type SessionState string

const (
	// SessionStateLobby indicates the host is still setting up
	SessionStateLobby SessionState = "lobby"

	// SessionStateVotingOpen indicates ratings are being collected
	SessionStateVotingOpen SessionState = "voting_open"

	// SessionStateEnded indicates results are available
	SessionStateEnded SessionState = "ended"
)

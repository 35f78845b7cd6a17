package voting

import (
	"time"

	"github.com/KirkDiggler/grubvote/internal/code"
	"github.com/KirkDiggler/grubvote/internal/common/clock"
	"github.com/KirkDiggler/grubvote/internal/common/password"
	"github.com/KirkDiggler/grubvote/internal/common/uuid"
	"github.com/KirkDiggler/grubvote/internal/models"
	preferencesRepo "github.com/KirkDiggler/grubvote/internal/repositories/preferences"
	sessionRepo "github.com/KirkDiggler/grubvote/internal/repositories/session"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/menugen"
	"github.com/rs/zerolog"
)

const (
	// SweepInterval is how often stale sessions are looked for
	SweepInterval = 10 * time.Minute

	// MaxSessionAge is how long a non-voting session may live
	MaxSessionAge = 2 * time.Hour

	// maxCodeAttempts bounds code allocation retries
	maxCodeAttempts = 50
)

// Config holds configuration for the voting service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// PreferencesRepo is optional. Without it registered users are treated
	// like guests.
	PreferencesRepo preferencesRepo.Repository

	// Service dependencies
	Publisher broadcast.Publisher

	// MenuGenerator is optional. Without it GenerateMenu always fails.
	MenuGenerator menugen.Generator

	// Utility dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	CodeGenerator code.Generator
	Hasher        password.Hasher

	Logger zerolog.Logger
}

// OptionInput is one menu row as submitted by a client
type OptionInput struct {
	Name       string   `json:"name"`
	Restaurant string   `json:"restaurant"`
	Price      float64  `json:"price"`
	Image      string   `json:"image"`
	Tags       []string `json:"tags"`
}

// SettingsPatch is a partial settings update. Nil fields keep their value.
type SettingsPatch struct {
	Engine            *models.MenuEngine `json:"engine,omitempty"`
	Mode              *models.MenuMode   `json:"mode,omitempty"`
	PerUserLimit      *int               `json:"perUserLimit,omitempty"`
	MaxParticipants   *int               `json:"maxParticipants,omitempty"`
	Weights           *models.Weights    `json:"weights,omitempty"`
	VotingSeconds     *int               `json:"votingSeconds,omitempty"`
	InactivityMinutes *int               `json:"inactivityMinutes,omitempty"`
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	Name     string
	Password string

	// UserID marks the host as a registered user
	UserID string

	// Restrictions are used for guest hosts
	Restrictions *models.Restrictions

	// Options is an optional initial menu
	Options []*OptionInput
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	Code             string
	ParticipantToken string
	State            *models.Snapshot
}

// UpdateSettingsInput contains parameters for updating settings
type UpdateSettingsInput struct {
	Code     string
	Token    string
	Settings *SettingsPatch
}

// UpdateSettingsOutput contains the result of updating settings
type UpdateSettingsOutput struct {
	State *models.Snapshot
}

// UpdateOptionsInput contains parameters for replacing the menu
type UpdateOptionsInput struct {
	Code    string
	Token   string
	Options []*OptionInput
}

// UpdateOptionsOutput contains the result of replacing the menu
type UpdateOptionsOutput struct {
	State *models.Snapshot
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	Code     string
	Password string
	Name     string
	UserID   string

	// Restrictions are ignored when stored preferences exist for UserID
	Restrictions *models.Restrictions

	// ExistingToken reconnects a participant already in the session
	ExistingToken string
}

// JoinSessionOutput contains the result of joining a session
type JoinSessionOutput struct {
	ParticipantToken string
	State            *models.Snapshot
}

// GetSessionInput contains parameters for reading a session
type GetSessionInput struct {
	Code  string
	Token string
}

// GetSessionOutput contains the caller's view of a session
type GetSessionOutput struct {
	State *models.Snapshot
}

// AddUserOptionsInput contains parameters for a guest adding rows
type AddUserOptionsInput struct {
	Code    string
	Token   string
	Options []*OptionInput
}

// AddUserOptionsOutput contains the result of adding rows
type AddUserOptionsOutput struct {
	// Accepted is how many rows made it onto the menu
	Accepted int
	State    *models.Snapshot
}

// StartVotingInput contains parameters for starting a round. The optional
// overrides are validated like a settings update and persisted.
type StartVotingInput struct {
	Code          string
	Token         string
	VotingSeconds *int
	Weights       *models.Weights
}

// StartVotingOutput contains the result of starting a round
type StartVotingOutput struct {
	VotingEndsAt time.Time
	State        *models.Snapshot
}

// SubmitRatingsInput contains a participant's ratings keyed by option ID
type SubmitRatingsInput struct {
	Code    string
	Token   string
	Ratings map[int]models.Rating
}

// SubmitRatingsOutput contains the result of a submission
type SubmitRatingsOutput struct {
	// Accepted is how many option ratings were kept
	Accepted int
}

// EndVotingInput contains parameters for ending a round
type EndVotingInput struct {
	Code  string
	Token string
}

// EndVotingOutput contains the round's results
type EndVotingOutput struct {
	Leaderboard []*models.LeaderboardEntry
	Winner      *models.LeaderboardEntry
}

// ExpireSessionInput contains parameters for a client expiry report
type ExpireSessionInput struct {
	Code string
}

// ExpireSessionOutput is empty on success
type ExpireSessionOutput struct {
}

// GenerateMenuInput contains parameters for AI menu generation
type GenerateMenuInput struct {
	Code  string
	Token string

	// Prefs is free text describing what the group wants
	Prefs string
}

// GenerateMenuOutput contains the state after the menu was replaced
type GenerateMenuOutput struct {
	State *models.Snapshot
}

// SweepSessionsInput contains parameters for a sweep
type SweepSessionsInput struct {
}

// SweepSessionsOutput lists the codes a sweep destroyed
type SweepSessionsOutput struct {
	Removed []string
}

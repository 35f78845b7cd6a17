package ws

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/KirkDiggler/grubvote/internal/services/voting"
)

// Request types. Clients may also send them with a "session:" prefix.
const (
	TypeCreate         = "create"
	TypeUpdateSettings = "updateSettings"
	TypeUpdateOptions  = "updateOptions"
	TypeJoin           = "join"
	TypeGet            = "get"
	TypeAddUserOptions = "addUserOptions"
	TypeStart          = "start"
	TypeSubmitRatings  = "submitRatings"
	TypeEnd            = "end"
	TypeExpire         = "expire"
	TypeAIGenerate     = "aiGenerate"

	// TypeAck is the type of every reply to a request
	TypeAck = "ack"
)

// Error is a transport error shown to clients as is
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrBadRequest  Error = "Invalid request"
	ErrUnknownType Error = "Unknown request type"

	// errInternal is what clients see for anything unexpected
	errInternal = "Something went wrong"
)

// Request is one client message
type Request struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Ack answers exactly one Request
type Ack struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type createPayload struct {
	Name         string                `json:"name"`
	Password     string                `json:"password"`
	UserID       string                `json:"userId"`
	Restrictions *models.Restrictions  `json:"restrictions"`
	Options      []*voting.OptionInput `json:"options"`
}

type joinPayload struct {
	Code         string               `json:"code"`
	Password     string               `json:"password"`
	Name         string               `json:"name"`
	UserID       string               `json:"userId"`
	Restrictions *models.Restrictions `json:"restrictions"`
	Token        string               `json:"token"`
}

// sessionPayload is shared by requests that only identify the caller
type sessionPayload struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

type settingsPayload struct {
	sessionPayload
	Settings *voting.SettingsPatch `json:"settings"`
}

type optionsPayload struct {
	sessionPayload
	Options []*voting.OptionInput `json:"options"`
}

type startPayload struct {
	sessionPayload
	VotingSeconds *int            `json:"votingSeconds"`
	Weights       *models.Weights `json:"weights"`
}

type ratingsPayload struct {
	sessionPayload
	Ratings map[int]models.Rating `json:"ratings"`
}

type generatePayload struct {
	sessionPayload
	Prefs string `json:"prefs"`
}

type stateResult struct {
	State *models.Snapshot `json:"state"`
}

type createResult struct {
	Code  string           `json:"code"`
	Token string           `json:"token"`
	State *models.Snapshot `json:"state"`
}

type joinResult struct {
	Token string           `json:"token"`
	State *models.Snapshot `json:"state"`
}

type addOptionsResult struct {
	Accepted int              `json:"accepted"`
	State    *models.Snapshot `json:"state"`
}

type startResult struct {
	VotingEndsAt time.Time        `json:"votingEndsAt"`
	State        *models.Snapshot `json:"state"`
}

type submitResult struct {
	Accepted int `json:"accepted"`
}

type endResult struct {
	Leaderboard []*models.LeaderboardEntry `json:"leaderboard"`
	Winner      *models.LeaderboardEntry   `json:"winner"`
}

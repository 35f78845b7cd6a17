package voting

// Error is a user-facing voting error. The text is shown to clients as is.
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Request errors
const (
	ErrInvalidCode      Error = "Invalid code"
	ErrWrongPassword    Error = "Wrong password"
	ErrNameAndPassword  Error = "Name and password required"
	ErrNameRequired     Error = "Name required"
	ErrNotInSession     Error = "Not in this session"
	ErrVotingStarted    Error = "Voting already started"
	ErrVotingClosed     Error = "Voting closed"
	ErrVotingNotOpen    Error = "Voting not open"
	ErrAlreadySubmitted Error = "Already submitted"
	ErrNotExpired       Error = "Session not expired"
	ErrLobbyFull        Error = "Lobby is full"

	ErrNotHostSettings Error = "Only host can change settings"
	ErrNotHostMenu     Error = "Only host can change the menu"
	ErrNotHostStart    Error = "Only host can start voting"
	ErrNotHostEnd      Error = "Only host can end voting"
	ErrNotHostGenerate Error = "Only host can generate the menu"

	ErrPerUserLimit       Error = "Per-user limit must be 1-3"
	ErrInvalidMode        Error = "Invalid mode"
	ErrWeights            Error = "Weights must add up to 100"
	ErrVotingSeconds      Error = "Voting time must be 30-300 seconds"
	ErrInactivity         Error = "Inactivity must be 1-60 minutes"
	ErrMaxParticipants    Error = "Max participants must be 2-20"
	ErrBelowParticipants  Error = "Max participants below current count"
	ErrNoRestaurants      Error = "Add at least one restaurant"
	ErrInvalidOptions     Error = "Each option needs a name, a price above 0 and at least one tag"
	ErrTooManyOptions     Error = "Max 6 options"
	ErrMenuFull           Error = "Menu is full"
	ErrQuotaSpent         Error = "You already added your options"
	ErrPerUserModeOnly    Error = "Adding options is only allowed in per-user mode"
	ErrHostEditsMenu      Error = "Host edits the menu directly"
	ErrNotEnoughPeople    Error = "Need at least 2 participants"
	ErrNoOptions          Error = "No options to vote on"
	ErrNoRatings          Error = "No ratings provided"
	ErrEngineNotAI        Error = "Switch menu engine to AI first"
	ErrGenerationFailed   Error = "AI menu generation failed, try again"
	ErrNoUsableOptions    Error = "AI returned no usable options"
	ErrGeneratorMissing   Error = "AI menu generation is not configured"
	ErrCodeSpaceExhausted Error = "Could not allocate a session code"
)

// Config errors
const (
	ErrNilConfig        Error = "config cannot be nil"
	ErrNilSessionRepo   Error = "session repository cannot be nil"
	ErrNilPublisher     Error = "publisher cannot be nil"
	ErrNilClock         Error = "clock cannot be nil"
	ErrNilUUIDGenerator Error = "UUID generator cannot be nil"
	ErrNilCodeGenerator Error = "code generator cannot be nil"
	ErrNilHasher        Error = "password hasher cannot be nil"
)

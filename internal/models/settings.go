package models

// MenuEngine selects how the menu is produced
type MenuEngine string

const (
	// MenuEngineManual means rows are entered by people
	MenuEngineManual MenuEngine = "manual"

	// MenuEngineAI means rows come from the menu generator
	MenuEngineAI MenuEngine = "ai"
)

// MenuMode selects who may add rows in the manual engine
type MenuMode string

const (
	// MenuModeHostOnly means only the host edits the menu
	MenuModeHostOnly MenuMode = "host_only"

	// MenuModePerUser means every guest may add up to PerUserLimit rows
	MenuModePerUser MenuMode = "per_user"
)

// Weights are the percentage weights of each rating axis. They sum to 100.
type Weights struct {
	Taste int `json:"taste"`
	Mood  int `json:"mood"`
	Value int `json:"value"`
}

// Sum returns the total of all weights
func (w Weights) Sum() int {
	return w.Taste + w.Mood + w.Value
}

// Settings are the host-controlled knobs of a session
type Settings struct {
	Engine            MenuEngine `json:"engine"`
	Mode              MenuMode   `json:"mode"`
	PerUserLimit      int        `json:"perUserLimit"`
	MaxParticipants   int        `json:"maxParticipants"`
	Weights           Weights    `json:"weights"`
	VotingSeconds     int        `json:"votingSeconds"`
	InactivityMinutes int        `json:"inactivityMinutes"`
}

// DefaultSettings returns the settings of a freshly created session
func DefaultSettings() Settings {
	return Settings{
		Engine:            MenuEngineManual,
		Mode:              MenuModeHostOnly,
		PerUserLimit:      2,
		MaxParticipants:   10,
		Weights:           Weights{Taste: 40, Mood: 40, Value: 20},
		VotingSeconds:     90,
		InactivityMinutes: 5,
	}
}

package models

import (
	"time"
)

// LeaderboardEntry is one option's aggregated score
type LeaderboardEntry struct {
	// OptionID is the ID of the scored option
	OptionID int `json:"optionId"`

	// Name is the option name
	Name string `json:"name"`

	// Restaurant is the option restaurant
	Restaurant string `json:"restaurant"`

	// Price is the option price
	Price float64 `json:"price"`

	// Image is the option image URL
	Image string `json:"image"`

	// Tags are the option tags
	Tags []string `json:"tags"`

	// Voters is how many participants rated this option
	Voters int `json:"voters"`

	// TasteAvg, MoodAvg and ValueAvg are averages over voters only
	TasteAvg float64 `json:"tasteAvg"`
	MoodAvg  float64 `json:"moodAvg"`
	ValueAvg float64 `json:"valueAvg"`

	// Score is the weighted score rounded to 3 decimals
	Score float64 `json:"score"`
}

// Results is the outcome of a voting round
type Results struct {
	// Leaderboard is ordered best first
	Leaderboard []*LeaderboardEntry `json:"leaderboard"`

	// Winner is the first leaderboard entry, nil when there were no options
	Winner *LeaderboardEntry `json:"winner"`

	// EndedAt is when voting closed
	EndedAt time.Time `json:"endedAt"`
}

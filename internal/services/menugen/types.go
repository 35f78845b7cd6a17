package menugen

// Suggestion is one generated menu row
type Suggestion struct {
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	AveragePrice float64  `json:"averagePrice"`
	Tags         []string `json:"tags"`
}

// GenerateInput contains parameters for generating suggestions
type GenerateInput struct {
	// Prefs is what the group is in the mood for
	Prefs string

	// AvoidTags must not appear on any suggestion
	AvoidTags []string

	// Max is how many suggestions the model is asked for. Replies may hold
	// more or fewer rows.
	Max int
}

// GenerateOutput contains generated suggestions
type GenerateOutput struct {
	Suggestions []*Suggestion
}

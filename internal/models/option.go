package models

// MaxOptions is the menu size limit
const MaxOptions = 6

// Option is one menu entry participants vote on
type Option struct {
	// ID is sequential within a session and never reused
	ID int `json:"id"`

	// Name is the dish or meal name
	Name string `json:"name"`

	// Restaurant is where the meal comes from
	Restaurant string `json:"restaurant"`

	// Price is always greater than zero
	Price float64 `json:"price"`

	// Image is an optional image URL
	Image string `json:"image"`

	// Tags is a sorted set of lower-case classification tags
	Tags []string `json:"tags"`
}

// HasTag reports whether the option carries tag
func (o *Option) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Rating is one participant's rating of one option. Every axis is a
// half step in [0, 5].
type Rating struct {
	Taste float64 `json:"taste"`
	Mood  float64 `json:"mood"`
	Value float64 `json:"value"`
}

// IsZero reports whether every axis is zero
func (r Rating) IsZero() bool {
	return r.Taste == 0 && r.Mood == 0 && r.Value == 0
}

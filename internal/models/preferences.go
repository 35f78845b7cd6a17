package models

// UserPreferences are a registered user's stored food preferences
type UserPreferences struct {
	// UserID is the registered user's ID
	UserID string `json:"userId"`

	// Likes are tags the user enjoys. Not used for filtering.
	Likes []string `json:"likes"`

	// Dislikes are tags the user will not eat
	Dislikes []string `json:"dislikes"`

	// Diets are diet labels such as vegan or halal
	Diets []string `json:"diets"`

	// Allergens are free-form allergen names
	Allergens []string `json:"allergens"`
}

package preferences

import "github.com/KirkDiggler/grubvote/internal/models"

// SavePreferencesInput contains parameters for saving preferences
type SavePreferencesInput struct {
	Preferences *models.UserPreferences
}

// GetPreferencesInput contains parameters for retrieving preferences
type GetPreferencesInput struct {
	UserID string
}

// DeletePreferencesInput contains parameters for deleting preferences
type DeletePreferencesInput struct {
	UserID string
}

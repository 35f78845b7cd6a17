package preferences

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/grubvote/internal/repositories/preferences Repository

import (
	"context"

	"github.com/KirkDiggler/grubvote/internal/models"
)

// Repository defines the interface for registered-user preference storage
type Repository interface {
	// SavePreferences persists a user's preferences
	SavePreferences(ctx context.Context, input *SavePreferencesInput) error

	// GetPreferences retrieves a user's preferences
	GetPreferences(ctx context.Context, input *GetPreferencesInput) (*models.UserPreferences, error)

	// DeletePreferences removes a user's preferences
	DeletePreferences(ctx context.Context, input *DeletePreferencesInput) error
}

package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/KirkDiggler/grubvote/internal/models"
)

// Seed loads a JSON array of user preferences from r and applies each entry
// in order. An entry replaces what is stored for its user; an entry with
// only a userId clears it. It returns how many entries were applied before
// any error.
func Seed(ctx context.Context, repo Repository, r io.Reader) (int, error) {
	var entries []*models.UserPreferences
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("failed to decode preferences: %w", err)
	}

	applied := 0
	for i, prefs := range entries {
		var err error
		if prefs != nil && isEmpty(prefs) {
			err = repo.DeletePreferences(ctx, &DeletePreferencesInput{UserID: prefs.UserID})
			if errors.Is(err, ErrPreferencesNotFound) {
				err = nil
			}
		} else {
			err = repo.SavePreferences(ctx, &SavePreferencesInput{Preferences: prefs})
		}
		if err != nil {
			return applied, fmt.Errorf("failed to apply preferences entry %d: %w", i, err)
		}
		applied++
	}

	return applied, nil
}

func isEmpty(prefs *models.UserPreferences) bool {
	return len(prefs.Likes) == 0 && len(prefs.Dislikes) == 0 &&
		len(prefs.Diets) == 0 && len(prefs.Allergens) == 0
}

package voting

import (
	"testing"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettings_Normalizes(t *testing.T) {
	ai := models.MenuEngineAI
	bogusEngine := models.MenuEngine("quantum")
	hostOnly := models.MenuModeHostOnly
	perUser := models.MenuModePerUser

	perUserSettings := models.DefaultSettings()
	perUserSettings.Mode = models.MenuModePerUser
	perUserSettings.PerUserLimit = 1

	tests := []struct {
		name      string
		current   models.Settings
		patch     *SettingsPatch
		wantMode  models.MenuMode
		wantLimit int
		wantEng   models.MenuEngine
	}{
		{"nil patch", models.DefaultSettings(), nil, models.MenuModeHostOnly, 2, models.MenuEngineManual},
		{"unknown engine becomes manual", models.DefaultSettings(), &SettingsPatch{Engine: &bogusEngine}, models.MenuModeHostOnly, 2, models.MenuEngineManual},
		{"ai forces host only", perUserSettings, &SettingsPatch{Engine: &ai}, models.MenuModeHostOnly, 0, models.MenuEngineAI},
		{"ai ignores mode", models.DefaultSettings(), &SettingsPatch{Engine: &ai, Mode: &perUser, PerUserLimit: intPtr(3)}, models.MenuModeHostOnly, 0, models.MenuEngineAI},
		{"host only forces limit 2", perUserSettings, &SettingsPatch{Mode: &hostOnly, PerUserLimit: intPtr(3)}, models.MenuModeHostOnly, 2, models.MenuEngineManual},
		{"per user keeps limit", models.DefaultSettings(), &SettingsPatch{Mode: &perUser, PerUserLimit: intPtr(3)}, models.MenuModePerUser, 3, models.MenuEngineManual},
		{"per user reuses current limit", models.DefaultSettings(), &SettingsPatch{Mode: &perUser}, models.MenuModePerUser, 2, models.MenuEngineManual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mergeSettings(tt.current, tt.patch)
			require.NoError(t, err)

			assert.Equal(t, tt.wantEng, got.Engine)
			assert.Equal(t, tt.wantMode, got.Mode)
			assert.Equal(t, tt.wantLimit, got.PerUserLimit)
		})
	}
}

func TestMergeSettings_DoesNotTouchCurrent(t *testing.T) {
	current := models.DefaultSettings()
	perUser := models.MenuModePerUser

	_, err := mergeSettings(current, &SettingsPatch{
		Mode:         &perUser,
		PerUserLimit: intPtr(9),
		Weights:      &models.Weights{Taste: 100},
	})
	assert.ErrorIs(t, err, ErrPerUserLimit)
	assert.Equal(t, models.DefaultSettings(), current)
}

func TestValidateSettings(t *testing.T) {
	valid := models.DefaultSettings()
	assert.NoError(t, validateSettings(valid, 10))

	edges := valid
	edges.VotingSeconds = 30
	edges.InactivityMinutes = 60
	edges.MaxParticipants = 20
	edges.Weights = models.Weights{Value: 100}
	assert.NoError(t, validateSettings(edges, 20))

	edges.MaxParticipants = 2
	assert.ErrorIs(t, validateSettings(edges, 3), ErrBelowParticipants)
}

package voting

import (
	"context"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
)

// UpdateSettings merges a settings patch over the current settings. The
// merged result is validated as a whole; on any failure the stored settings
// are left untouched.
func (s *service) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if session.IsVotingOpen {
		return nil, ErrVotingStarted
	}

	if !session.IsHost(input.Token) {
		return nil, ErrNotHostSettings
	}

	next, err := mergeSettings(session.Settings, input.Settings)
	if err != nil {
		return nil, err
	}

	if err := validateSettings(next, len(session.Participants)); err != nil {
		return nil, err
	}

	session.Settings = next
	s.touch(rt, session)
	s.publish(ctx, broadcast.EventState, session)

	s.logger.Debug().
		Str("code", session.Code).
		Str("engine", string(next.Engine)).
		Str("mode", string(next.Mode)).
		Msg("settings updated")

	return &UpdateSettingsOutput{
		State: broadcast.Project(session, input.Token),
	}, nil
}

// mergeSettings applies patch to a copy of current and normalizes the
// engine and mode rules
func mergeSettings(current models.Settings, patch *SettingsPatch) (models.Settings, error) {
	next := current
	if patch == nil {
		return next, nil
	}

	if patch.Engine != nil {
		next.Engine = *patch.Engine
	}
	if patch.Mode != nil {
		next.Mode = *patch.Mode
	}
	if patch.PerUserLimit != nil {
		next.PerUserLimit = *patch.PerUserLimit
	}
	if patch.MaxParticipants != nil {
		next.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Weights != nil {
		next.Weights = *patch.Weights
	}
	if patch.VotingSeconds != nil {
		next.VotingSeconds = *patch.VotingSeconds
	}
	if patch.InactivityMinutes != nil {
		next.InactivityMinutes = *patch.InactivityMinutes
	}

	if next.Engine != models.MenuEngineAI {
		next.Engine = models.MenuEngineManual
	}

	switch {
	case next.Engine == models.MenuEngineAI:
		next.Mode = models.MenuModeHostOnly
		next.PerUserLimit = 0
	case next.Mode == models.MenuModeHostOnly:
		next.PerUserLimit = 2
	case next.Mode == models.MenuModePerUser:
		if next.PerUserLimit < 1 || next.PerUserLimit > 3 {
			return current, ErrPerUserLimit
		}
	default:
		return current, ErrInvalidMode
	}

	return next, nil
}

// validateSettings checks the numeric ranges shared by settings updates and
// start overrides
func validateSettings(settings models.Settings, participants int) error {
	w := settings.Weights
	if w.Taste < 0 || w.Mood < 0 || w.Value < 0 || w.Sum() != 100 {
		return ErrWeights
	}

	if settings.VotingSeconds < 30 || settings.VotingSeconds > 300 {
		return ErrVotingSeconds
	}

	if settings.InactivityMinutes < 1 || settings.InactivityMinutes > 60 {
		return ErrInactivity
	}

	if settings.MaxParticipants < 2 || settings.MaxParticipants > 20 {
		return ErrMaxParticipants
	}

	if settings.MaxParticipants < participants {
		return ErrBelowParticipants
	}

	return nil
}

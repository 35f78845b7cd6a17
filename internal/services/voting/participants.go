package voting

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/grubvote/internal/models"
	preferencesRepo "github.com/KirkDiggler/grubvote/internal/repositories/preferences"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
)

// JoinSession adds a participant, or reconnects one when ExistingToken
// belongs to the session
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	name := strings.TrimSpace(input.Name)
	userID := strings.TrimSpace(input.UserID)

	// Stored preferences are fetched before the session is locked
	restrictions := s.resolveRestrictions(ctx, userID, input.Restrictions)

	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if !s.hasher.Verify(session.PasswordHash, input.Password) {
		return nil, ErrWrongPassword
	}

	p, reconnect := participant(session, input.ExistingToken)
	if reconnect {
		// A running round keeps the participant exactly as it voted
		if !session.IsVotingOpen {
			if name != "" {
				p.Name = name
				if p.IsHost {
					session.Host.Name = name
				}
			}
			if userID != "" {
				p.UserID = userID
				p.IsRegistered = true
			}
			if restrictions != nil {
				p.Restrictions = restrictions
			}
		}
	} else {
		if name == "" {
			return nil, ErrNameRequired
		}

		if session.IsVotingOpen {
			return nil, ErrVotingStarted
		}

		if len(session.Participants) >= session.Settings.MaxParticipants {
			return nil, ErrLobbyFull
		}

		p = &models.Participant{
			Token:        s.uuidGenerator.NewUUID(),
			Name:         name,
			UserID:       userID,
			IsRegistered: userID != "",
			Restrictions: restrictions,
			JoinedAt:     s.clock.Now(),
		}
		session.Participants[p.Token] = p
	}

	refilter(session)
	s.touch(rt, session)
	s.publish(ctx, broadcast.EventState, session)

	s.logger.Info().
		Str("code", session.Code).
		Str("name", p.Name).
		Bool("reconnect", reconnect).
		Bool("registered", p.IsRegistered).
		Int("visible", len(session.Options)).
		Msg("participant joined")

	return &JoinSessionOutput{
		ParticipantToken: p.Token,
		State:            broadcast.Project(session, p.Token),
	}, nil
}

// GetSession returns the caller's view of a session
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if _, ok := participant(session, input.Token); !ok {
		return nil, ErrNotInSession
	}

	return &GetSessionOutput{
		State: broadcast.Project(session, input.Token),
	}, nil
}

// resolveRestrictions prefers stored preferences for registered users and
// falls back to the client payload
func (s *service) resolveRestrictions(ctx context.Context, userID string, client *models.Restrictions) *models.Restrictions {
	if userID != "" && s.preferencesRepo != nil {
		prefs, err := s.preferencesRepo.GetPreferences(ctx, &preferencesRepo.GetPreferencesInput{
			UserID: userID,
		})
		switch {
		case err == nil && prefs != nil:
			return fromPreferences(prefs)
		case errors.Is(err, preferencesRepo.ErrPreferencesNotFound):
			s.logger.Debug().Str("user_id", userID).Msg("no stored preferences, using client restrictions")
		case err != nil:
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to load preferences, using client restrictions")
		}
	}

	if client == nil {
		return nil
	}

	return &models.Restrictions{
		AvoidTags: normalizeTags(client.AvoidTags),
		Allergens: strings.TrimSpace(client.Allergens),
		Diet:      strings.TrimSpace(client.Diet),
	}
}

// fromPreferences maps stored preferences: dislikes and diets become avoid
// tags, allergens and diets are kept as display text
func fromPreferences(prefs *models.UserPreferences) *models.Restrictions {
	avoid := make([]string, 0, len(prefs.Dislikes)+len(prefs.Diets))
	avoid = append(avoid, prefs.Dislikes...)
	avoid = append(avoid, prefs.Diets...)

	return &models.Restrictions{
		AvoidTags: normalizeTags(avoid),
		Allergens: joinNonEmpty(prefs.Allergens),
		Diet:      joinNonEmpty(prefs.Diets),
	}
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ", ")
}

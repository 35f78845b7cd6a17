package voting

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/grubvote/internal/models"
	sessionRepo "github.com/KirkDiggler/grubvote/internal/repositories/session"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
)

// CreateSession opens a new session with the caller as host
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, ErrNameAndPassword
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.Password == "" {
		return nil, ErrNameAndPassword
	}

	if len(input.Options) > models.MaxOptions {
		return nil, ErrTooManyOptions
	}

	options, err := initialMenu(input.Options)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	restrictions := s.resolveRestrictions(ctx, input.UserID, input.Restrictions)

	now := s.clock.Now()
	token := s.uuidGenerator.NewUUID()
	userID := strings.TrimSpace(input.UserID)

	session := &models.Session{
		PasswordHash: hash,
		Host: models.Host{
			ParticipantToken: token,
			Name:             name,
			UserID:           userID,
			IsRegistered:     userID != "",
		},
		Participants: map[string]*models.Participant{
			token: {
				Token:        token,
				Name:         name,
				UserID:       userID,
				IsRegistered: userID != "",
				IsHost:       true,
				Restrictions: restrictions,
				JoinedAt:     now,
			},
		},
		Ratings:        make(map[string]map[int]models.Rating),
		NextOptionID:   1,
		Settings:       models.DefaultSettings(),
		CreatedAt:      now,
		LastActivityAt: now,
	}
	session.ExpiresAt = now.Add(inactivityWindow(session.Settings))
	replaceMenu(session, options)

	rt, err := s.register(ctx, session)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	s.scheduleExpiry(rt, session)
	s.publish(ctx, broadcast.EventState, session)

	s.metrics.SessionsCreatedTotal.Add(ctx, 1)
	s.metrics.ActiveSessions.Add(ctx, 1)

	s.logger.Info().
		Str("code", session.Code).
		Bool("registered", session.Host.IsRegistered).
		Int("options", len(session.BaseOptions)).
		Msg("session created")

	return &CreateSessionOutput{
		Code:             session.Code,
		ParticipantToken: token,
		State:            broadcast.Project(session, token),
	}, nil
}

// StartVoting opens a voting round. It is also how an ended session is
// restarted.
func (s *service) StartVoting(ctx context.Context, input *StartVotingInput) (*StartVotingOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if !session.IsHost(input.Token) {
		return nil, ErrNotHostStart
	}

	if session.IsVotingOpen {
		return nil, ErrVotingStarted
	}

	if len(session.Participants) < 2 {
		return nil, ErrNotEnoughPeople
	}

	if len(session.Options) == 0 {
		return nil, ErrNoOptions
	}

	settings := session.Settings
	if input.VotingSeconds != nil {
		settings.VotingSeconds = *input.VotingSeconds
	}
	if input.Weights != nil {
		settings.Weights = *input.Weights
	}
	if err := validateSettings(settings, len(session.Participants)); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	endsAt := now.Add(time.Duration(settings.VotingSeconds) * time.Second)

	session.Settings = settings
	clearRatings(session)
	session.Results = nil
	session.HasEnded = false
	session.IsVotingOpen = true
	session.VotingEndsAt = &endsAt

	s.stopExpiry(rt)
	s.scheduleVoting(rt, settings.VotingSeconds)
	s.publish(ctx, broadcast.EventState, session)

	s.logger.Info().
		Str("code", session.Code).
		Int("participants", len(session.Participants)).
		Int("options", len(session.Options)).
		Time("ends_at", endsAt).
		Msg("voting started")

	return &StartVotingOutput{
		VotingEndsAt: endsAt,
		State:        broadcast.Project(session, input.Token),
	}, nil
}

// EndVoting closes the running round
func (s *service) EndVoting(ctx context.Context, input *EndVotingInput) (*EndVotingOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if !session.IsHost(input.Token) {
		return nil, ErrNotHostEnd
	}

	if !session.IsVotingOpen {
		return nil, ErrVotingNotOpen
	}

	results := s.endVoting(ctx, rt, session)

	return &EndVotingOutput{
		Leaderboard: results.Leaderboard,
		Winner:      results.Winner,
	}, nil
}

// endVoting must be called with rt.mu held and voting open
func (s *service) endVoting(ctx context.Context, rt *runtime, session *models.Session) *models.Results {
	s.stopVoting(rt)

	results := ComputeResults(session.Options, session.Ratings, session.Settings.Weights)
	results.EndedAt = s.clock.Now()

	session.Results = results
	session.IsVotingOpen = false
	session.HasEnded = true
	session.VotingEndsAt = nil

	s.publish(ctx, broadcast.EventResults, session)
	s.metrics.VotingRoundsTotal.Add(ctx, 1)

	event := s.logger.Info().Str("code", session.Code).Int("options", len(results.Leaderboard))
	if results.Winner != nil {
		event = event.Str("winner", results.Winner.Name).Float64("score", results.Winner.Score)
	}
	event.Msg("voting ended")

	return results
}

// ExpireSession destroys a session once its inactivity window has really
// passed. Client clocks are not trusted.
func (s *service) ExpireSession(ctx context.Context, input *ExpireSessionInput) (*ExpireSessionOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if session.IsVotingOpen || session.HasEnded || s.clock.Now().Before(session.ExpiresAt) {
		return nil, ErrNotExpired
	}

	s.destroy(ctx, rt, session, "client")

	return &ExpireSessionOutput{}, nil
}

// SweepSessions destroys every non-voting session older than MaxSessionAge
func (s *service) SweepSessions(ctx context.Context, input *SweepSessionsInput) (*SweepSessionsOutput, error) {
	list, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return nil, err
	}

	out := &SweepSessionsOutput{}
	for _, listed := range list.Sessions {
		s.mu.RLock()
		rt, ok := s.runtimes[listed.Code]
		s.mu.RUnlock()
		if !ok {
			continue
		}

		rt.mu.Lock()
		session, err := s.load(ctx, rt)
		if err == nil && !session.IsVotingOpen && s.clock.Now().Sub(session.CreatedAt) > MaxSessionAge {
			s.destroy(ctx, rt, session, "sweep")
			out.Removed = append(out.Removed, rt.code)
		}
		rt.mu.Unlock()
	}

	if len(out.Removed) > 0 {
		s.logger.Info().Strs("codes", out.Removed).Msg("swept stale sessions")
	}

	return out, nil
}

// Start schedules the periodic sweep
func (s *service) Start(ctx context.Context) error {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()

	if s.sweepTimer != nil {
		return nil
	}

	s.stopped = false
	s.scheduleSweep(context.WithoutCancel(ctx))

	return nil
}

// scheduleSweep must be called with s.sweepMu held
func (s *service) scheduleSweep(ctx context.Context) {
	s.sweepTimer = s.clock.AfterFunc(SweepInterval, func() {
		if _, err := s.SweepSessions(ctx, &SweepSessionsInput{}); err != nil {
			s.logger.Error().Err(err).Msg("session sweep failed")
		}

		s.sweepMu.Lock()
		defer s.sweepMu.Unlock()
		if !s.stopped {
			s.scheduleSweep(ctx)
		}
	})
}

// Stop cancels the sweep and every session timer. Sessions stay readable.
func (s *service) Stop() {
	s.sweepMu.Lock()
	s.stopped = true
	if s.sweepTimer != nil {
		s.sweepTimer.Stop()
		s.sweepTimer = nil
	}
	s.sweepMu.Unlock()

	s.mu.RLock()
	runtimes := make([]*runtime, 0, len(s.runtimes))
	for _, rt := range s.runtimes {
		runtimes = append(runtimes, rt)
	}
	s.mu.RUnlock()

	for _, rt := range runtimes {
		rt.mu.Lock()
		s.stopExpiry(rt)
		s.stopVoting(rt)
		rt.mu.Unlock()
	}
}

// touch refreshes the inactivity window. Running and ended rounds have no
// inactivity window. Must be called with rt.mu held.
func (s *service) touch(rt *runtime, session *models.Session) {
	if session.IsVotingOpen || session.HasEnded {
		return
	}

	now := s.clock.Now()
	session.LastActivityAt = now
	session.ExpiresAt = now.Add(inactivityWindow(session.Settings))

	s.scheduleExpiry(rt, session)
}

// scheduleExpiry must be called with rt.mu held
func (s *service) scheduleExpiry(rt *runtime, session *models.Session) {
	s.stopExpiry(rt)

	gen := rt.expireGen
	delay := session.ExpiresAt.Sub(s.clock.Now())
	rt.expireTimer = s.clock.AfterFunc(delay, func() {
		s.onInactivity(rt, gen)
	})
}

// stopExpiry must be called with rt.mu held
func (s *service) stopExpiry(rt *runtime) {
	rt.expireGen++
	if rt.expireTimer != nil {
		rt.expireTimer.Stop()
		rt.expireTimer = nil
	}
}

// scheduleVoting must be called with rt.mu held
func (s *service) scheduleVoting(rt *runtime, seconds int) {
	s.stopVoting(rt)

	gen := rt.votingGen
	rt.votingTimer = s.clock.AfterFunc(time.Duration(seconds)*time.Second, func() {
		s.onVotingDeadline(rt, gen)
	})
}

// stopVoting must be called with rt.mu held
func (s *service) stopVoting(rt *runtime) {
	rt.votingGen++
	if rt.votingTimer != nil {
		rt.votingTimer.Stop()
		rt.votingTimer = nil
	}
}

func (s *service) onInactivity(rt *runtime, gen uint64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.expireGen != gen {
		return
	}

	ctx := context.Background()
	session, err := s.load(ctx, rt)
	if err != nil {
		return
	}

	if session.IsVotingOpen || session.HasEnded {
		return
	}

	s.destroy(ctx, rt, session, "inactivity")
}

func (s *service) onVotingDeadline(rt *runtime, gen uint64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.votingGen != gen {
		return
	}

	ctx := context.Background()
	session, err := s.load(ctx, rt)
	if err != nil || !session.IsVotingOpen {
		return
	}

	s.endVoting(ctx, rt, session)
}

func inactivityWindow(settings models.Settings) time.Duration {
	return time.Duration(settings.InactivityMinutes) * time.Minute
}

// clearRatings drops every rating and submission flag
func clearRatings(session *models.Session) {
	session.Ratings = make(map[string]map[int]models.Rating)
	for _, p := range session.Participants {
		p.HasSubmitted = false
	}
}

package voting

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/grubvote/internal/code"
	"github.com/KirkDiggler/grubvote/internal/common/clock"
	"github.com/KirkDiggler/grubvote/internal/common/password"
	"github.com/KirkDiggler/grubvote/internal/common/uuid"
	"github.com/KirkDiggler/grubvote/internal/models"
	preferencesRepo "github.com/KirkDiggler/grubvote/internal/repositories/preferences"
	sessionRepo "github.com/KirkDiggler/grubvote/internal/repositories/session"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/menugen"
	"github.com/KirkDiggler/grubvote/internal/telemetry"
	"github.com/rs/zerolog"
)

// runtime is the in-process state of one live session. mu serializes every
// request and timer callback touching the session.
type runtime struct {
	mu   sync.Mutex
	code string

	expireTimer clock.Timer
	votingTimer clock.Timer

	// Generations invalidate timers that fired after being superseded
	expireGen uint64
	votingGen uint64

	destroyed bool
}

// service implements the Service interface
type service struct {
	sessionRepo     sessionRepo.Repository
	preferencesRepo preferencesRepo.Repository
	publisher       broadcast.Publisher
	menuGenerator   menugen.Generator
	clock           clock.Clock
	uuidGenerator   uuid.UUID
	codeGenerator   code.Generator
	hasher          password.Hasher
	logger          zerolog.Logger
	metrics         *telemetry.Metrics

	mu       sync.RWMutex
	runtimes map[string]*runtime

	sweepMu    sync.Mutex
	sweepTimer clock.Timer
	stopped    bool
}

var _ Service = (*service)(nil)

// New creates a new voting service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Publisher == nil {
		return nil, ErrNilPublisher
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.CodeGenerator == nil {
		return nil, ErrNilCodeGenerator
	}

	if cfg.Hasher == nil {
		return nil, ErrNilHasher
	}

	return &service{
		sessionRepo:     cfg.SessionRepo,
		preferencesRepo: cfg.PreferencesRepo,
		publisher:       cfg.Publisher,
		menuGenerator:   cfg.MenuGenerator,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		codeGenerator:   cfg.CodeGenerator,
		hasher:          cfg.Hasher,
		logger:          cfg.Logger.With().Str("component", "voting").Logger(),
		metrics:         telemetry.GetMetrics(),
		runtimes:        make(map[string]*runtime),
	}, nil
}

// acquire locks the runtime of code and loads its session. The caller must
// call release on success.
func (s *service) acquire(ctx context.Context, sessionCode string) (*runtime, *models.Session, error) {
	if !code.Valid(sessionCode) {
		return nil, nil, ErrInvalidCode
	}

	s.mu.RLock()
	rt, ok := s.runtimes[sessionCode]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrInvalidCode
	}

	rt.mu.Lock()
	session, err := s.load(ctx, rt)
	if err != nil {
		rt.mu.Unlock()
		return nil, nil, err
	}

	return rt, session, nil
}

func (s *service) release(rt *runtime) {
	rt.mu.Unlock()
}

// load must be called with rt.mu held
func (s *service) load(ctx context.Context, rt *runtime) (*models.Session, error) {
	if rt.destroyed {
		return nil, ErrInvalidCode
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: rt.code,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	return session, nil
}

// register stores a new session under a fresh code and returns its runtime,
// already locked
func (s *service) register(ctx context.Context, session *models.Session) (*runtime, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		session.Code = s.codeGenerator.NewCode()

		err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
			Session: session,
		})
		if errors.Is(err, sessionRepo.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		rt := &runtime{code: session.Code}
		rt.mu.Lock()

		s.mu.Lock()
		s.runtimes[session.Code] = rt
		s.mu.Unlock()

		return rt, nil
	}

	s.logger.Error().Int("attempts", maxCodeAttempts).Msg("no free session code found")
	return nil, ErrCodeSpaceExhausted
}

// destroy removes the session for good. It must be called with rt.mu held.
func (s *service) destroy(ctx context.Context, rt *runtime, session *models.Session, reason string) {
	s.stopExpiry(rt)
	s.stopVoting(rt)
	rt.destroyed = true

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{Code: rt.code}); err != nil {
		s.logger.Warn().Err(err).Str("code", rt.code).Msg("failed to delete session")
	}

	s.mu.Lock()
	delete(s.runtimes, rt.code)
	s.mu.Unlock()

	s.publish(ctx, broadcast.EventExpired, session)

	s.metrics.SessionsDestroyedTotal.Add(ctx, 1, telemetry.Reason(reason))
	s.metrics.ActiveSessions.Add(ctx, -1)

	s.logger.Info().Str("code", rt.code).Str("reason", reason).Msg("session destroyed")
}

// publish must be called with the session's runtime locked
func (s *service) publish(ctx context.Context, event broadcast.EventType, session *models.Session) {
	err := s.publisher.Publish(ctx, &broadcast.PublishInput{
		Event:   event,
		Session: session,
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Str("code", session.Code).
			Str("event", string(event)).
			Msg("failed to publish session event")
	}
}

// participant returns the participant owning token, if any
func participant(session *models.Session, token string) (*models.Participant, bool) {
	if token == "" {
		return nil, false
	}
	p, ok := session.Participants[token]
	return p, ok
}

package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/grubvote/internal/common/clock"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const (
	// staleAfter outlasts any session, so an entry this quiet missed its
	// expiry event
	staleAfter = 3 * time.Hour
	pruneEvery = 10 * time.Minute
)

//go:generate mockgen -package=mocks -destination=mocks/mock_sender.go github.com/KirkDiggler/grubvote/internal/handlers/discord MessageSender

// MessageSender is the part of a discord session the announcer needs
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Subscriber is the part of the broadcast hub the announcer needs
type Subscriber interface {
	Subscribe(input *broadcast.SubscribeInput) *broadcast.Subscription
	Unsubscribe(sub *broadcast.Subscription)
}

// Config holds the configuration for the announcer
type Config struct {
	// Token is the discord bot token. Ignored when Sender is set.
	Token string

	// ChannelID is where announcements are posted
	ChannelID string

	// Sender overrides the discord session, used by tests
	Sender MessageSender

	// Hub is the broadcast hub to listen on
	Hub Subscriber

	// Messaging supplies announcement text
	Messaging messaging.Service

	// Tone is the preferred results tone (optional)
	Tone messaging.MessageTone

	// Clock defaults to the system clock
	Clock clock.Clock

	Logger zerolog.Logger
}

// tracked is what the announcer remembers about one session
type tracked struct {
	voting bool
	rounds int
	seen   time.Time
}

// Announcer posts round openings, results and expiries to a discord channel
type Announcer struct {
	sender    MessageSender
	channelID string
	hub       Subscriber
	messaging messaging.Service
	tone      messaging.MessageTone
	clock     clock.Clock
	logger    zerolog.Logger

	sessions  map[string]*tracked
	lastPrune time.Time

	mu   sync.Mutex
	sub  *broadcast.Subscription
	done chan struct{}
}

// New creates a new announcer
func New(cfg *Config) (*Announcer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}

	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	sender := cfg.Sender
	if sender == nil {
		if cfg.Token == "" {
			return nil, errors.New("token cannot be empty")
		}

		session, err := discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		sender = session
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &Announcer{
		sender:    sender,
		channelID: cfg.ChannelID,
		hub:       cfg.Hub,
		messaging: cfg.Messaging,
		tone:      cfg.Tone,
		clock:     clk,
		logger:    cfg.Logger.With().Str("component", "discord").Logger(),
		sessions:  make(map[string]*tracked),
	}, nil
}

// Start subscribes to every session and posts announcements until Stop is
// called or ctx is done
func (a *Announcer) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sub != nil {
		return errors.New("announcer already started")
	}

	a.sub = a.hub.Subscribe(&broadcast.SubscribeInput{})
	a.done = make(chan struct{})

	go a.run(ctx, a.sub, a.done)

	a.logger.Info().Str("channel", a.channelID).Msg("announcer started")
	return nil
}

// Stop unsubscribes and waits for the loop to finish
func (a *Announcer) Stop() {
	a.mu.Lock()
	sub, done := a.sub, a.done
	a.sub, a.done = nil, nil
	a.mu.Unlock()

	if sub == nil {
		return
	}

	a.hub.Unsubscribe(sub)
	<-done
}

func (a *Announcer) run(ctx context.Context, sub *broadcast.Subscription, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			a.hub.Unsubscribe(sub)
			return
		case msg, ok := <-sub.C:
			if !ok {
				return
			}
			a.handle(ctx, msg)
		}
	}
}

// handle is only called from the run loop, so sessions needs no lock
func (a *Announcer) handle(ctx context.Context, msg *broadcast.Message) {
	now := a.clock.Now()
	a.prune(now)

	t, ok := a.sessions[msg.Code]
	if !ok {
		t = &tracked{}
		a.sessions[msg.Code] = t
	}
	t.seen = now

	var embed *discordgo.MessageEmbed

	switch msg.Event {
	case broadcast.EventState:
		if msg.State == nil {
			return
		}
		opened := msg.State.IsVotingOpen && !t.voting
		t.voting = msg.State.IsVotingOpen
		if !opened {
			return
		}
		t.rounds++

		out, err := a.messaging.GetVotingStartedMessage(ctx, &messaging.GetVotingStartedMessageInput{
			Options:      len(msg.State.Options),
			Participants: len(msg.State.Participants),
			Seconds:      msg.State.Settings.VotingSeconds,
		})
		if err != nil {
			a.logger.Warn().Err(err).Str("code", msg.Code).Msg("failed to build voting message")
			return
		}
		embed = renderVotingStartedEmbed(msg.Code, out)

	case broadcast.EventResults:
		t.voting = false
		if msg.Results == nil {
			return
		}

		input := &messaging.GetResultsMessageInput{PreferredTone: a.tone}
		if w := msg.Results.Winner; w != nil {
			input.WinnerName = w.Name
			input.Restaurant = w.Restaurant
			input.Score = w.Score
			input.Voters = w.Voters
		}

		out, err := a.messaging.GetResultsMessage(ctx, input)
		if err != nil {
			a.logger.Warn().Err(err).Str("code", msg.Code).Msg("failed to build results message")
			return
		}
		embed = renderResultsEmbed(msg.Code, msg.Results, out)

	case broadcast.EventExpired:
		delete(a.sessions, msg.Code)
		// Sessions that never voted are not worth a message
		if t.rounds == 0 {
			return
		}

		out, err := a.messaging.GetExpiredMessage(ctx, &messaging.GetExpiredMessageInput{Code: msg.Code})
		if err != nil {
			a.logger.Warn().Err(err).Str("code", msg.Code).Msg("failed to build expired message")
			return
		}
		embed = renderExpiredEmbed(msg.Code, out)

	default:
		return
	}

	_, err := a.sender.ChannelMessageSendComplex(a.channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	if err != nil {
		a.logger.Error().Err(err).
			Str("code", msg.Code).
			Str("event", string(msg.Event)).
			Msg("failed to post announcement")
		return
	}

	a.logger.Debug().Str("code", msg.Code).Str("event", string(msg.Event)).Msg("posted announcement")
}

// prune forgets sessions whose expiry was never seen, such as when the
// event was dropped on a full queue
func (a *Announcer) prune(now time.Time) {
	if now.Sub(a.lastPrune) < pruneEvery {
		return
	}
	a.lastPrune = now

	for code, t := range a.sessions {
		if now.Sub(t.seen) >= staleAfter {
			delete(a.sessions, code)
			a.logger.Debug().Str("code", code).Msg("forgot stale session")
		}
	}
}

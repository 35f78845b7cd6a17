package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(cfg *Config) (*service, error) {
	seed := time.Now().UnixNano()
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// pick returns a random entry of messages
func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// GetResultsMessage returns the announcement for a finished round
func (s *service) GetResultsMessage(ctx context.Context, input *GetResultsMessageInput) (*GetResultsMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneCelebration
	}

	if input.WinnerName == "" {
		return &GetResultsMessageOutput{
			Title: "No winner",
			Message: s.pick([]string{
				"Nobody could agree on anything. Cereal for dinner it is.",
				"The menu was empty, so the vote was too.",
				"No options, no winner. Try adding a few restaurants next time.",
			}),
			Tone: ToneNeutral,
		}, nil
	}

	place := input.WinnerName
	if input.Restaurant != "" {
		place = fmt.Sprintf("%s from %s", input.WinnerName, input.Restaurant)
	}

	var titles, messages []string
	switch tone {
	case ToneNeutral:
		titles = []string{"Results are in", "Winner"}
		messages = []string{
			fmt.Sprintf("%s won with a score of %.2f from %d %s.", place, input.Score, input.Voters, plural(input.Voters, "vote", "votes")),
		}
	case ToneFunny:
		titles = []string{"The people have spoken", "Stomachs have voted"}
		messages = []string{
			fmt.Sprintf("%s takes it with %.2f. The losers may sulk over breadsticks.", place, input.Score),
			fmt.Sprintf("Democracy tastes like %s (%.2f).", place, input.Score),
			fmt.Sprintf("%d %s later, %s is the chosen one.", input.Voters, plural(input.Voters, "opinion", "opinions"), place),
		}
	default:
		titles = []string{"We have a winner!", "Dinner is decided!", "Winner winner!"}
		messages = []string{
			fmt.Sprintf("%s wins with %.2f! Grab your coats.", place, input.Score),
			fmt.Sprintf("It's %s! Scored %.2f across %d %s.", place, input.Score, input.Voters, plural(input.Voters, "vote", "votes")),
			fmt.Sprintf("The group has chosen %s. Score: %.2f.", place, input.Score),
		}
	}

	return &GetResultsMessageOutput{
		Title:   s.pick(titles),
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetVotingStartedMessage returns the announcement for a round opening
func (s *service) GetVotingStartedMessage(ctx context.Context, input *GetVotingStartedMessageInput) (*GetVotingStartedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetVotingStartedMessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("Voting is open! %d %s, %d seconds. Go.", input.Options, plural(input.Options, "option", "options"), input.Seconds),
			fmt.Sprintf("%d hungry people, %d seconds on the clock. Rate away!", input.Participants, input.Seconds),
			fmt.Sprintf("The clock is ticking: %d seconds to rate %d %s.", input.Seconds, input.Options, plural(input.Options, "option", "options")),
		}),
	}, nil
}

// GetExpiredMessage returns the announcement for a session that timed out
func (s *service) GetExpiredMessage(ctx context.Context, input *GetExpiredMessageInput) (*GetExpiredMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetExpiredMessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("Session %s went quiet and was closed.", input.Code),
			fmt.Sprintf("Session %s timed out. Everyone must have ordered pizza.", input.Code),
			fmt.Sprintf("Session %s expired. Start a new one when you are hungry again.", input.Code),
		}),
	}, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

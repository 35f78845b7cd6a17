package voting

import (
	"context"
	"math"
	"sort"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
)

// SubmitRatings records the caller's ratings. A participant submits once
// per round; there is no way to overwrite a submission.
func (s *service) SubmitRatings(ctx context.Context, input *SubmitRatingsInput) (*SubmitRatingsOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	p, ok := participant(session, input.Token)
	if !ok {
		return nil, ErrNotInSession
	}

	if !session.IsVotingOpen {
		return nil, ErrVotingClosed
	}

	if p.HasSubmitted {
		return nil, ErrAlreadySubmitted
	}

	visible := make(map[int]struct{}, len(session.Options))
	for _, o := range session.Options {
		visible[o.ID] = struct{}{}
	}

	kept := make(map[int]models.Rating, len(input.Ratings))
	for optionID, r := range input.Ratings {
		if _, ok := visible[optionID]; !ok {
			continue
		}

		clamped := models.Rating{
			Taste: Clamp(r.Taste),
			Mood:  Clamp(r.Mood),
			Value: Clamp(r.Value),
		}
		if clamped.IsZero() {
			continue
		}
		kept[optionID] = clamped
	}

	if len(kept) == 0 {
		return nil, ErrNoRatings
	}

	session.Ratings[p.Token] = kept
	p.HasSubmitted = true

	s.publish(ctx, broadcast.EventState, session)
	s.metrics.RatingsSubmittedTotal.Add(ctx, 1)

	s.logger.Debug().
		Str("code", session.Code).
		Str("name", p.Name).
		Int("ratings", len(kept)).
		Msg("ratings submitted")

	return &SubmitRatingsOutput{
		Accepted: len(kept),
	}, nil
}

// Clamp rounds x to the nearest half step within [0, 5]. NaN counts as 0.
func Clamp(x float64) float64 {
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= 5:
		return 5
	}
	return math.Round(x*2) / 2
}

// ComputeResults ranks options by weighted score. Each axis is averaged over
// the participants who rated that option only. Ties are broken by voter
// count, then lower price, then name.
func ComputeResults(options []*models.Option, ratings map[string]map[int]models.Rating, weights models.Weights) *models.Results {
	// Sum in a fixed order so identical input gives identical floats
	tokens := make([]string, 0, len(ratings))
	for token := range ratings {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	leaderboard := make([]*models.LeaderboardEntry, 0, len(options))
	for _, o := range options {
		entry := &models.LeaderboardEntry{
			OptionID:   o.ID,
			Name:       o.Name,
			Restaurant: o.Restaurant,
			Price:      o.Price,
			Image:      o.Image,
			Tags:       append([]string(nil), o.Tags...),
		}

		var taste, mood, value float64
		for _, token := range tokens {
			r, ok := ratings[token][o.ID]
			if !ok {
				continue
			}
			entry.Voters++
			taste += r.Taste
			mood += r.Mood
			value += r.Value
		}

		if entry.Voters > 0 {
			n := float64(entry.Voters)
			taste, mood, value = taste/n, mood/n, value/n

			score := (taste*float64(weights.Taste) + mood*float64(weights.Mood) + value*float64(weights.Value)) / 100
			entry.TasteAvg = round3(taste)
			entry.MoodAvg = round3(mood)
			entry.ValueAvg = round3(value)
			entry.Score = round3(score)
		}

		leaderboard = append(leaderboard, entry)
	}

	sort.SliceStable(leaderboard, func(i, j int) bool {
		a, b := leaderboard[i], leaderboard[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Voters != b.Voters {
			return a.Voters > b.Voters
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.OptionID < b.OptionID
	})

	results := &models.Results{
		Leaderboard: leaderboard,
	}
	if len(leaderboard) > 0 {
		results.Winner = leaderboard[0]
	}

	return results
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

package voting

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/menugen"
	"github.com/KirkDiggler/grubvote/internal/telemetry"
)

// UpdateOptions replaces the whole menu
func (s *service) UpdateOptions(ctx context.Context, input *UpdateOptionsInput) (*UpdateOptionsOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if session.IsVotingOpen {
		return nil, ErrVotingStarted
	}

	if !session.IsHost(input.Token) {
		return nil, ErrNotHostMenu
	}

	options, err := hostMenu(input.Options)
	if err != nil {
		return nil, err
	}

	replaceMenu(session, options)
	s.touch(rt, session)
	s.publish(ctx, broadcast.EventState, session)

	s.logger.Debug().
		Str("code", session.Code).
		Int("options", len(session.BaseOptions)).
		Int("visible", len(session.Options)).
		Msg("menu replaced")

	return &UpdateOptionsOutput{
		State: broadcast.Project(session, input.Token),
	}, nil
}

// AddUserOptions appends a guest's rows in per-user mode
func (s *service) AddUserOptions(ctx context.Context, input *AddUserOptionsInput) (*AddUserOptionsOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	p, ok := participant(session, input.Token)
	if !ok {
		return nil, ErrNotInSession
	}

	if session.IsVotingOpen {
		return nil, ErrVotingStarted
	}

	if session.Settings.Engine != models.MenuEngineManual || session.Settings.Mode != models.MenuModePerUser {
		return nil, ErrPerUserModeOnly
	}

	if p.IsHost {
		return nil, ErrHostEditsMenu
	}

	slots := models.MaxOptions - len(session.BaseOptions)
	if slots <= 0 {
		return nil, ErrMenuFull
	}

	quota := session.Settings.PerUserLimit - p.SubmittedOptionsCount
	if quota <= 0 {
		return nil, ErrQuotaSpent
	}

	options, err := validRows(input.Options)
	if err != nil {
		return nil, err
	}

	accepted := min(len(options), quota, slots)
	options = options[:accepted]

	for _, o := range options {
		o.ID = session.NextOptionID
		session.NextOptionID++
	}
	session.BaseOptions = append(session.BaseOptions, options...)
	p.SubmittedOptionsCount += accepted

	clearRatings(session)
	refilter(session)
	s.touch(rt, session)
	s.publish(ctx, broadcast.EventState, session)

	return &AddUserOptionsOutput{
		Accepted: accepted,
		State:    broadcast.Project(session, input.Token),
	}, nil
}

// GenerateMenu replaces the menu with AI suggestions. The generator runs
// without holding the session, so the preconditions are checked again
// before the result is applied.
func (s *service) GenerateMenu(ctx context.Context, input *GenerateMenuInput) (*GenerateMenuOutput, error) {
	rt, session, err := s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if err := canGenerate(session, input.Token); err != nil {
		s.release(rt)
		return nil, err
	}
	avoid := avoidTags(session)
	s.release(rt)

	if s.menuGenerator == nil {
		return nil, ErrGeneratorMissing
	}

	started := s.clock.Now()
	generated, err := s.menuGenerator.Generate(ctx, &menugen.GenerateInput{
		Prefs:     input.Prefs,
		AvoidTags: avoid,
		Max:       models.MaxOptions,
	})
	s.metrics.MenuGenerationDuration.Record(ctx, float64(s.clock.Now().Sub(started))/float64(time.Millisecond))
	s.metrics.MenuGenerationsTotal.Add(ctx, 1, telemetry.Outcome(err == nil))
	if err != nil {
		if errors.Is(err, menugen.ErrMalformedOutput) || errors.Is(err, menugen.ErrEmptyResponse) {
			s.logger.Warn().Err(err).Str("code", input.Code).Msg("menu generator returned unusable output")
			return nil, ErrNoUsableOptions
		}
		s.logger.Error().Err(err).Str("code", input.Code).Msg("menu generation failed")
		return nil, ErrGenerationFailed
	}
	if generated == nil {
		return nil, ErrNoUsableOptions
	}

	rows := make([]*OptionInput, 0, len(generated.Suggestions))
	for _, suggestion := range generated.Suggestions {
		rows = append(rows, &OptionInput{
			Name:       suggestion.Name,
			Restaurant: suggestion.Location,
			Price:      suggestion.AveragePrice,
			Tags:       suggestion.Tags,
		})
	}

	options, err := validRows(rows)
	if err != nil {
		return nil, ErrNoUsableOptions
	}
	if len(options) > models.MaxOptions {
		options = options[:models.MaxOptions]
	}

	rt, session, err = s.acquire(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	defer s.release(rt)

	if err := canGenerate(session, input.Token); err != nil {
		return nil, err
	}

	replaceMenu(session, options)
	s.touch(rt, session)
	s.publish(ctx, broadcast.EventState, session)

	s.logger.Info().
		Str("code", session.Code).
		Int("options", len(session.BaseOptions)).
		Msg("menu generated")

	return &GenerateMenuOutput{
		State: broadcast.Project(session, input.Token),
	}, nil
}

func canGenerate(session *models.Session, token string) error {
	if !session.IsHost(token) {
		return ErrNotHostGenerate
	}

	if session.IsVotingOpen {
		return ErrVotingStarted
	}

	if session.Settings.Engine != models.MenuEngineAI {
		return ErrEngineNotAI
	}

	return nil
}

// initialMenu validates the optional menu given at creation. An empty menu
// is allowed.
func initialMenu(rows []*OptionInput) ([]*models.Option, error) {
	options, hadContent := normalizeRows(rows)
	if !hadContent {
		return nil, nil
	}
	if len(options) == 0 {
		return nil, ErrInvalidOptions
	}
	return options, nil
}

// hostMenu validates a full menu replacement, keeping at most MaxOptions
// valid rows
func hostMenu(rows []*OptionInput) ([]*models.Option, error) {
	options, err := validRows(rows)
	if err != nil {
		return nil, err
	}

	if len(options) > models.MaxOptions {
		options = options[:models.MaxOptions]
	}

	return options, nil
}

// validRows drops invalid rows and reports why nothing was left
func validRows(rows []*OptionInput) ([]*models.Option, error) {
	options, hadContent := normalizeRows(rows)
	if !hadContent {
		return nil, ErrNoRestaurants
	}

	if len(options) == 0 {
		return nil, ErrInvalidOptions
	}

	return options, nil
}

// normalizeRows converts the valid rows to options without IDs. hadContent
// reports whether any row had anything filled in.
func normalizeRows(rows []*OptionInput) ([]*models.Option, bool) {
	var options []*models.Option
	hadContent := false

	for _, row := range rows {
		if row == nil {
			continue
		}

		o := &models.Option{
			Name:       strings.TrimSpace(row.Name),
			Restaurant: strings.TrimSpace(row.Restaurant),
			Price:      row.Price,
			Image:      strings.TrimSpace(row.Image),
			Tags:       normalizeTags(row.Tags),
		}

		if o.Name != "" || o.Restaurant != "" || o.Image != "" || o.Price != 0 || len(o.Tags) > 0 {
			hadContent = true
		}

		if o.Name == "" || !(o.Price > 0) || math.IsInf(o.Price, 0) || len(o.Tags) == 0 {
			continue
		}

		options = append(options, o)
	}

	return options, hadContent
}

// normalizeTags trims, lower-cases, dedupes and sorts tags
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	sort.Strings(out)
	return out
}

// replaceMenu installs options as the whole menu with fresh IDs. Every
// rating and per-user row count is reset.
func replaceMenu(session *models.Session, options []*models.Option) {
	for _, o := range options {
		o.ID = session.NextOptionID
		session.NextOptionID++
	}

	session.BaseOptions = options
	for _, p := range session.Participants {
		p.SubmittedOptionsCount = 0
	}

	clearRatings(session)
	refilter(session)
}

// refilter recomputes the visible options: anything carrying a tag some
// participant avoids is hidden for everyone
func refilter(session *models.Session) {
	avoid := make(map[string]struct{})
	for _, tag := range avoidTags(session) {
		avoid[tag] = struct{}{}
	}

	visible := make([]*models.Option, 0, len(session.BaseOptions))
	for _, o := range session.BaseOptions {
		hidden := false
		for _, tag := range o.Tags {
			if _, ok := avoid[strings.ToLower(tag)]; ok {
				hidden = true
				break
			}
		}
		if !hidden {
			visible = append(visible, o)
		}
	}

	session.Options = visible
}

// avoidTags returns the sorted union of every participant's avoid tags
func avoidTags(session *models.Session) []string {
	var all []string
	for _, p := range session.Participants {
		if p.Restrictions != nil {
			all = append(all, p.Restrictions.AvoidTags...)
		}
	}
	return normalizeTags(all)
}

package broadcast

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/grubvote/internal/models"
)

// Project builds the snapshot of session that viewerToken is allowed to see.
// Participant tokens are only revealed on the viewer's own entry.
func Project(session *models.Session, viewerToken string) *models.Snapshot {
	if session == nil {
		return nil
	}

	snap := &models.Snapshot{
		Code:         session.Code,
		State:        session.State(),
		IsVotingOpen: session.IsVotingOpen,
		HasEnded:     session.HasEnded,
		ViewerIsHost: session.IsHost(viewerToken),
		Host: models.HostView{
			Name:         session.Host.Name,
			IsRegistered: session.Host.IsRegistered,
		},
		Participants:      projectParticipants(session, viewerToken),
		BaseOptions:       copyOptions(session.BaseOptions),
		Options:           copyOptions(session.Options),
		GroupRestrictions: GroupSummary(session),
		Settings:          session.Settings,
		Results:           session.Results,
		CreatedAt:         session.CreatedAt,
		ExpiresAt:         session.ExpiresAt,
	}

	if session.VotingEndsAt != nil {
		endsAt := *session.VotingEndsAt
		snap.VotingEndsAt = &endsAt
	}

	for _, p := range session.Participants {
		if p.HasSubmitted {
			snap.SubmittedCount++
		}
	}

	return snap
}

func projectParticipants(session *models.Session, viewerToken string) []*models.ParticipantView {
	participants := make([]*models.Participant, 0, len(session.Participants))
	for _, p := range session.Participants {
		participants = append(participants, p)
	}

	// Host first, then join order
	sort.SliceStable(participants, func(i, j int) bool {
		if participants[i].IsHost != participants[j].IsHost {
			return participants[i].IsHost
		}
		if !participants[i].JoinedAt.Equal(participants[j].JoinedAt) {
			return participants[i].JoinedAt.Before(participants[j].JoinedAt)
		}
		return participants[i].Name < participants[j].Name
	})

	views := make([]*models.ParticipantView, 0, len(participants))
	for _, p := range participants {
		view := &models.ParticipantView{
			Name:                  p.Name,
			IsRegistered:          p.IsRegistered,
			IsHost:                p.IsHost,
			HasSubmitted:          p.HasSubmitted,
			SubmittedOptionsCount: p.SubmittedOptionsCount,
			Restrictions:          copyRestrictions(p.Restrictions),
		}
		if viewerToken != "" && p.Token == viewerToken {
			view.Token = p.Token
			view.IsYou = true
		}
		views = append(views, view)
	}

	return views
}

// GroupSummary unions every participant's avoid tags and diets. It is for
// display only and never feeds filtering.
func GroupSummary(session *models.Session) models.GroupRestrictions {
	tags := make(map[string]struct{})
	diets := make(map[string]struct{})

	for _, p := range session.Participants {
		if p.Restrictions == nil {
			continue
		}
		for _, tag := range p.Restrictions.AvoidTags {
			tags[tag] = struct{}{}
		}
		for _, diet := range strings.Split(p.Restrictions.Diet, ",") {
			diet = strings.ToLower(strings.TrimSpace(diet))
			if diet != "" {
				diets[diet] = struct{}{}
			}
		}
	}

	return models.GroupRestrictions{
		AvoidTags: sortedKeys(tags),
		Diets:     sortedKeys(diets),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyOptions(options []*models.Option) []*models.Option {
	out := make([]*models.Option, 0, len(options))
	for _, o := range options {
		c := *o
		c.Tags = append([]string(nil), o.Tags...)
		sort.Strings(c.Tags)
		out = append(out, &c)
	}
	return out
}

func copyRestrictions(r *models.Restrictions) *models.Restrictions {
	if r == nil {
		return nil
	}
	c := *r
	c.AvoidTags = append([]string(nil), r.AvoidTags...)
	return &c
}

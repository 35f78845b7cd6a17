package broadcast

import (
	"testing"
	"time"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/stretchr/testify/suite"
)

type ProjectTestSuite struct {
	suite.Suite
	testTime time.Time
	session  *models.Session
}

func (s *ProjectTestSuite) SetupTest() {
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	s.session = &models.Session{
		Code: "12345",
		Host: models.Host{ParticipantToken: "host-token", Name: "Hana"},
		Participants: map[string]*models.Participant{
			"host-token": {
				Token:    "host-token",
				Name:     "Hana",
				IsHost:   true,
				JoinedAt: s.testTime,
				Restrictions: &models.Restrictions{
					AvoidTags: []string{"pork"},
					Diet:      "Halal",
				},
			},
			"guest-token": {
				Token:        "guest-token",
				Name:         "Gus",
				HasSubmitted: true,
				JoinedAt:     s.testTime.Add(time.Minute),
				Restrictions: &models.Restrictions{
					AvoidTags: []string{"seafood", "pork"},
					Diet:      "vegetarian, halal",
				},
			},
			"late-token": {
				Token:    "late-token",
				Name:     "Lee",
				JoinedAt: s.testTime.Add(2 * time.Minute),
			},
		},
		BaseOptions: []*models.Option{
			{ID: 1, Name: "Ramen", Price: 14, Tags: []string{"soup", "japanese"}},
		},
		Settings:  models.DefaultSettings(),
		CreatedAt: s.testTime,
		ExpiresAt: s.testTime.Add(5 * time.Minute),
	}
	s.session.Options = s.session.BaseOptions
}

func TestProjectTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectTestSuite))
}

func (s *ProjectTestSuite) TestTokensOnlyVisibleToOwner() {
	snap := Project(s.session, "guest-token")

	s.Require().Len(snap.Participants, 3)
	for _, p := range snap.Participants {
		if p.Name == "Gus" {
			s.Equal("guest-token", p.Token)
			s.True(p.IsYou)
		} else {
			s.Empty(p.Token)
			s.False(p.IsYou)
		}
	}
	s.False(snap.ViewerIsHost)
}

func (s *ProjectTestSuite) TestAnonymousViewerSeesNoTokens() {
	snap := Project(s.session, "")

	for _, p := range snap.Participants {
		s.Empty(p.Token)
	}
}

func (s *ProjectTestSuite) TestHostFlagAndOrdering() {
	snap := Project(s.session, "host-token")

	s.True(snap.ViewerIsHost)
	s.Equal("Hana", snap.Participants[0].Name)
	s.Equal("Gus", snap.Participants[1].Name)
	s.Equal("Lee", snap.Participants[2].Name)
	s.Equal(1, snap.SubmittedCount)
	s.Equal(models.SessionStateLobby, snap.State)
}

func (s *ProjectTestSuite) TestGroupSummary() {
	snap := Project(s.session, "")

	s.Equal([]string{"pork", "seafood"}, snap.GroupRestrictions.AvoidTags)
	s.Equal([]string{"halal", "vegetarian"}, snap.GroupRestrictions.Diets)
}

func (s *ProjectTestSuite) TestTagsSerializedSorted() {
	snap := Project(s.session, "")

	s.Equal([]string{"japanese", "soup"}, snap.Options[0].Tags)
	// The session itself is untouched
	s.Equal([]string{"soup", "japanese"}, s.session.BaseOptions[0].Tags)
}

func (s *ProjectTestSuite) TestSnapshotIsDetached() {
	endsAt := s.testTime.Add(90 * time.Second)
	s.session.VotingEndsAt = &endsAt

	snap := Project(s.session, "host-token")
	snap.Options[0].Name = "changed"
	*snap.VotingEndsAt = s.testTime

	s.Equal("Ramen", s.session.Options[0].Name)
	s.Equal(s.testTime.Add(90*time.Second), *s.session.VotingEndsAt)
}

func (s *ProjectTestSuite) TestNilSession() {
	s.Nil(Project(nil, "x"))
}

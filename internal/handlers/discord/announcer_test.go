package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/grubvote/internal/common/clock"
	"github.com/KirkDiggler/grubvote/internal/handlers/discord/mocks"
	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AnnouncerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	sender    *mocks.MockMessageSender
	hub       *broadcast.Hub
	clock     *clock.Fake
	announcer *Announcer
	ctx       context.Context
	posted    chan *discordgo.MessageEmbed
}

func (s *AnnouncerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sender = mocks.NewMockMessageSender(s.ctrl)
	s.hub = broadcast.NewHub(&broadcast.Config{BufferSize: 32})
	s.clock = clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
	s.posted = make(chan *discordgo.MessageEmbed, 8)

	msgs, err := messaging.NewService(&messaging.Config{Seed: 1})
	s.Require().NoError(err)

	s.announcer, err = New(&Config{
		ChannelID: "chan-1",
		Sender:    s.sender,
		Hub:       s.hub,
		Messaging: msgs,
		Tone:      messaging.ToneNeutral,
		Clock:     s.clock,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.announcer.Start(s.ctx))
}

func (s *AnnouncerTestSuite) TearDownTest() {
	s.announcer.Stop()
	s.ctrl.Finish()
}

func TestAnnouncerTestSuite(t *testing.T) {
	suite.Run(t, new(AnnouncerTestSuite))
}

func (s *AnnouncerTestSuite) expectPosts(n int) {
	s.sender.EXPECT().
		ChannelMessageSendComplex("chan-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
			s.posted <- data.Embeds[0]
			return &discordgo.Message{}, nil
		}).
		Times(n)
}

func (s *AnnouncerTestSuite) next() *discordgo.MessageEmbed {
	select {
	case embed := <-s.posted:
		return embed
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for announcement")
		return nil
	}
}

func (s *AnnouncerTestSuite) session(code string) *models.Session {
	return &models.Session{
		Code: code,
		Host: models.Host{ParticipantToken: "host", Name: "Hana"},
		Participants: map[string]*models.Participant{
			"host":  {Token: "host", Name: "Hana", IsHost: true},
			"guest": {Token: "guest", Name: "Gus"},
		},
		Options: []*models.Option{
			{ID: 1, Name: "Ramen", Restaurant: "Ippudo", Price: 16},
			{ID: 2, Name: "Tacos", Price: 9},
		},
		Settings: models.DefaultSettings(),
	}
}

func (s *AnnouncerTestSuite) publish(event broadcast.EventType, session *models.Session) {
	s.Require().NoError(s.hub.Publish(s.ctx, &broadcast.PublishInput{Event: event, Session: session}))
}

func (s *AnnouncerTestSuite) TestNewValidation() {
	msgs, err := messaging.NewService(nil)
	s.Require().NoError(err)

	_, err = New(nil)
	s.Error(err)

	_, err = New(&Config{Hub: s.hub, Messaging: msgs, Sender: s.sender})
	s.Error(err)

	_, err = New(&Config{ChannelID: "c", Messaging: msgs, Sender: s.sender})
	s.Error(err)

	_, err = New(&Config{ChannelID: "c", Hub: s.hub, Sender: s.sender})
	s.Error(err)

	_, err = New(&Config{ChannelID: "c", Hub: s.hub, Messaging: msgs})
	s.Error(err)
}

func (s *AnnouncerTestSuite) TestStartTwice() {
	s.Error(s.announcer.Start(s.ctx))
}

func (s *AnnouncerTestSuite) TestRoundIsAnnounced() {
	s.expectPosts(3)

	session := s.session("12345")
	s.publish(broadcast.EventState, session)

	session.IsVotingOpen = true
	s.publish(broadcast.EventState, session)
	// Still open, no second opening message
	s.publish(broadcast.EventState, session)

	opened := s.next()
	s.Equal("Voting is open", opened.Title)
	s.Equal("Session 12345", opened.Footer.Text)

	session.IsVotingOpen = false
	session.HasEnded = true
	winner := &models.LeaderboardEntry{OptionID: 1, Name: "Ramen", Restaurant: "Ippudo", Voters: 2, Score: 4.1}
	session.Results = &models.Results{
		Leaderboard: []*models.LeaderboardEntry{winner, {OptionID: 2, Name: "Tacos", Voters: 1, Score: 2}},
		Winner:      winner,
	}
	s.publish(broadcast.EventResults, session)

	results := s.next()
	s.Contains(results.Description, "Ramen from Ippudo")
	s.Require().Len(results.Fields, 2)
	s.Contains(results.Fields[0].Name, "Ramen (Ippudo)")

	s.publish(broadcast.EventExpired, session)

	expired := s.next()
	s.Equal("Session closed", expired.Title)
	s.Contains(expired.Description, "12345")
}

func (s *AnnouncerTestSuite) TestQuietSessionExpiryIsSkipped() {
	s.expectPosts(1)

	quiet := s.session("11111")
	s.publish(broadcast.EventState, quiet)
	s.publish(broadcast.EventExpired, quiet)

	busy := s.session("22222")
	busy.IsVotingOpen = true
	s.publish(broadcast.EventState, busy)

	// Messages are handled in order, so the first post proves the
	// quiet expiry was dropped
	s.Equal("Session 22222", s.next().Footer.Text)
}

func (s *AnnouncerTestSuite) TestSendFailureKeepsRunning() {
	gomock.InOrder(
		s.sender.EXPECT().
			ChannelMessageSendComplex("chan-1", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("discord is down")),
		s.sender.EXPECT().
			ChannelMessageSendComplex("chan-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
				s.posted <- data.Embeds[0]
				return &discordgo.Message{}, nil
			}),
	)

	first := s.session("11111")
	first.IsVotingOpen = true
	s.publish(broadcast.EventState, first)

	second := s.session("22222")
	second.IsVotingOpen = true
	s.publish(broadcast.EventState, second)

	s.Equal("Session 22222", s.next().Footer.Text)
}

func (s *AnnouncerTestSuite) TestStaleSessionsAreForgotten() {
	s.expectPosts(2)

	lost := s.session("11111")
	lost.IsVotingOpen = true
	s.publish(broadcast.EventState, lost)
	s.Equal("Session 11111", s.next().Footer.Text)

	// The expiry for 11111 never arrives
	s.clock.Advance(staleAfter + time.Minute)
	s.publish(broadcast.EventState, s.session("22222"))

	// A late expiry for a forgotten session reads as a quiet one
	s.publish(broadcast.EventExpired, lost)

	next := s.session("33333")
	next.IsVotingOpen = true
	s.publish(broadcast.EventState, next)
	s.Equal("Session 33333", s.next().Footer.Text)

	// The loop is idle once the last post is taken
	s.Len(s.announcer.sessions, 2)
	s.Contains(s.announcer.sessions, "22222")
	s.Contains(s.announcer.sessions, "33333")
}

func (s *AnnouncerTestSuite) TestRecentSessionsAreKept() {
	s.expectPosts(2)

	open := s.session("11111")
	open.IsVotingOpen = true
	s.publish(broadcast.EventState, open)
	s.Equal("Session 11111", s.next().Footer.Text)

	s.clock.Advance(staleAfter - time.Minute)
	s.publish(broadcast.EventState, s.session("22222"))

	s.publish(broadcast.EventExpired, open)
	s.Equal("Session closed", s.next().Title)
}

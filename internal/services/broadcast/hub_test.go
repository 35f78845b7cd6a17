package broadcast

import (
	"context"
	"testing"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/stretchr/testify/suite"
)

type HubTestSuite struct {
	suite.Suite
	hub     *Hub
	ctx     context.Context
	session *models.Session
}

func (s *HubTestSuite) SetupTest() {
	s.hub = NewHub(&Config{BufferSize: 2})
	s.ctx = context.Background()
	s.session = &models.Session{
		Code: "12345",
		Host: models.Host{ParticipantToken: "host-token", Name: "Hana"},
		Participants: map[string]*models.Participant{
			"host-token":  {Token: "host-token", Name: "Hana", IsHost: true},
			"guest-token": {Token: "guest-token", Name: "Gus"},
		},
		Settings: models.DefaultSettings(),
	}
}

func TestHubTestSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}

func (s *HubTestSuite) TestPublishProjectsPerViewer() {
	host := s.hub.Subscribe(&SubscribeInput{Code: "12345", ViewerToken: "host-token"})
	guest := s.hub.Subscribe(&SubscribeInput{Code: "12345", ViewerToken: "guest-token"})

	s.Require().NoError(s.hub.Publish(s.ctx, &PublishInput{Event: EventState, Session: s.session}))

	hostMsg := <-host.C
	guestMsg := <-guest.C

	s.Equal(EventState, hostMsg.Event)
	s.True(hostMsg.State.ViewerIsHost)
	s.False(guestMsg.State.ViewerIsHost)

	for _, p := range guestMsg.State.Participants {
		if p.Name == "Hana" {
			s.Empty(p.Token)
		}
	}
}

func (s *HubTestSuite) TestPublishOnlyReachesTopic() {
	other := s.hub.Subscribe(&SubscribeInput{Code: "54321"})

	s.Require().NoError(s.hub.Publish(s.ctx, &PublishInput{Event: EventState, Session: s.session}))

	select {
	case msg := <-other.C:
		s.Failf("unexpected message", "%+v", msg)
	default:
	}
}

func (s *HubTestSuite) TestFirehoseReceivesEverything() {
	all := s.hub.Subscribe(&SubscribeInput{})

	s.session.Results = &models.Results{}
	s.Require().NoError(s.hub.Publish(s.ctx, &PublishInput{Event: EventResults, Session: s.session}))

	msg := <-all.C
	s.Equal(EventResults, msg.Event)
	s.Equal("12345", msg.Code)
	s.NotNil(msg.Results)
	s.False(msg.State.ViewerIsHost)
}

func (s *HubTestSuite) TestExpiredCarriesNoState() {
	sub := s.hub.Subscribe(&SubscribeInput{Code: "12345", ViewerToken: "guest-token"})

	s.Require().NoError(s.hub.Publish(s.ctx, &PublishInput{Event: EventExpired, Session: s.session}))

	msg := <-sub.C
	s.Equal(EventExpired, msg.Event)
	s.Nil(msg.State)
}

func (s *HubTestSuite) TestFullQueueDropsInsteadOfBlocking() {
	sub := s.hub.Subscribe(&SubscribeInput{Code: "12345"})

	for i := 0; i < 5; i++ {
		s.Require().NoError(s.hub.Publish(s.ctx, &PublishInput{Event: EventState, Session: s.session}))
	}

	s.Len(sub.C, 2)
}

func (s *HubTestSuite) TestUnsubscribeClosesChannel() {
	sub := s.hub.Subscribe(&SubscribeInput{Code: "12345"})
	s.Equal(1, s.hub.Subscribers("12345"))

	s.hub.Unsubscribe(sub)
	s.hub.Unsubscribe(sub)

	_, open := <-sub.C
	s.False(open)
	s.Equal(0, s.hub.Subscribers("12345"))

	// Publishing after unsubscribe is harmless
	s.NoError(s.hub.Publish(s.ctx, &PublishInput{Event: EventState, Session: s.session}))
}

func (s *HubTestSuite) TestPublishInvalidInput() {
	s.Error(s.hub.Publish(s.ctx, nil))
	s.Error(s.hub.Publish(s.ctx, &PublishInput{Event: EventState}))
}

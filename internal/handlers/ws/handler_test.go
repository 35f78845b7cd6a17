package ws

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KirkDiggler/grubvote/internal/code"
	"github.com/KirkDiggler/grubvote/internal/common/clock"
	"github.com/KirkDiggler/grubvote/internal/common/password"
	"github.com/KirkDiggler/grubvote/internal/common/uuid"
	sessionRepo "github.com/KirkDiggler/grubvote/internal/repositories/session"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/voting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type HandlerTestSuite struct {
	suite.Suite
	hub *broadcast.Hub
	svc voting.Service
	srv *httptest.Server
}

func (s *HandlerTestSuite) SetupTest() {
	s.hub = broadcast.NewHub(&broadcast.Config{BufferSize: 64})

	svc, err := voting.New(&voting.Config{
		SessionRepo:   sessionRepo.NewMemory(),
		Publisher:     s.hub,
		Clock:         clock.NewFake(time.Date(2025, 4, 5, 18, 0, 0, 0, time.UTC)),
		UUIDGenerator: uuid.New(),
		CodeGenerator: code.New(&code.Config{Seed: 3}),
		Hasher:        password.NewBcrypt(&password.Config{Cost: bcrypt.MinCost}),
		Logger:        zerolog.Nop(),
	})
	s.Require().NoError(err)
	s.svc = svc

	handler, err := New(&Config{Service: s.svc, Hub: s.hub, Logger: zerolog.Nop()})
	s.Require().NoError(err)

	s.srv = httptest.NewServer(handler)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.srv.Close()
	s.svc.Stop()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func menu() []map[string]any {
	return []map[string]any{
		{"name": "Ramen", "restaurant": "Ippudo", "price": 16, "tags": []string{"noodles"}},
		{"name": "Tacos", "restaurant": "Lupe", "price": 9, "tags": []string{"mexican"}},
	}
}

func (s *HandlerTestSuite) TestFullRound() {
	host := dial(s.T(), s.srv)
	guest := dial(s.T(), s.srv)

	created := decodeData[createResult](s.T(), host.call(TypeCreate, map[string]any{
		"name":     "Hana",
		"password": "tacos",
		"options":  menu(),
	}))
	s.Len(created.Code, code.Length)
	s.NotEmpty(created.Token)
	s.True(created.State.ViewerIsHost)
	s.Len(created.State.Options, 2)

	joined := decodeData[joinResult](s.T(), guest.call("session:join", map[string]any{
		"code":     created.Code,
		"password": "tacos",
		"name":     "Gus",
	}))
	s.NotEmpty(joined.Token)
	s.False(joined.State.ViewerIsHost)

	push := host.waitPush(string(broadcast.EventState), func(env *envelope) bool {
		return len(env.State.Participants) == 2
	})
	s.Equal(created.Code, push.Code)

	started := decodeData[startResult](s.T(), host.call(TypeStart, map[string]any{
		"code":  created.Code,
		"token": created.Token,
	}))
	s.True(started.State.IsVotingOpen)

	guest.waitPush(string(broadcast.EventState), func(env *envelope) bool {
		return env.State.IsVotingOpen
	})

	submitted := decodeData[submitResult](s.T(), guest.call(TypeSubmitRatings, map[string]any{
		"code":  created.Code,
		"token": joined.Token,
		"ratings": map[string]any{
			"1": map[string]float64{"taste": 5, "mood": 5, "value": 5},
			"2": map[string]float64{"taste": 2, "mood": 2, "value": 2},
		},
	}))
	s.Equal(2, submitted.Accepted)

	ended := decodeData[endResult](s.T(), host.call(TypeEnd, map[string]any{
		"code":  created.Code,
		"token": created.Token,
	}))
	s.Require().NotNil(ended.Winner)
	s.Equal("Ramen", ended.Winner.Name)
	s.Len(ended.Leaderboard, 2)

	results := guest.waitPush(string(broadcast.EventResults), anyPush)
	s.Require().NotNil(results.Results)
	s.Equal("Ramen", results.Results.Winner.Name)
}

func (s *HandlerTestSuite) TestServiceErrorsAreShownVerbatim() {
	host := dial(s.T(), s.srv)
	created := decodeData[createResult](s.T(), host.call(TypeCreate, map[string]any{
		"name":     "Hana",
		"password": "tacos",
	}))

	guest := dial(s.T(), s.srv)
	ack := guest.call(TypeJoin, map[string]any{
		"code":     created.Code,
		"password": "nachos",
		"name":     "Gus",
	})
	s.False(ack.OK)
	s.Equal(voting.ErrWrongPassword.Error(), ack.Error)

	ack = guest.call(TypeGet, map[string]any{"code": "99999x"})
	s.False(ack.OK)
	s.Equal(voting.ErrInvalidCode.Error(), ack.Error)
}

func (s *HandlerTestSuite) TestGetSubscribesViewer() {
	host := dial(s.T(), s.srv)
	created := decodeData[createResult](s.T(), host.call(TypeCreate, map[string]any{
		"name":     "Hana",
		"password": "tacos",
		"options":  menu(),
	}))

	// A second tab for the host picks the session up with get
	tab := dial(s.T(), s.srv)
	got := decodeData[stateResult](s.T(), tab.call(TypeGet, map[string]any{
		"code":  created.Code,
		"token": created.Token,
	}))
	s.True(got.State.ViewerIsHost)

	guest := dial(s.T(), s.srv)
	decodeData[joinResult](s.T(), guest.call(TypeJoin, map[string]any{
		"code":     created.Code,
		"password": "tacos",
		"name":     "Gus",
	}))

	push := tab.waitPush(string(broadcast.EventState), func(env *envelope) bool {
		return len(env.State.Participants) == 2
	})
	s.True(push.State.ViewerIsHost)
}

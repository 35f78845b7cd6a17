package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/stretchr/testify/suite"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemory()
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) newSession(code string) *models.Session {
	return &models.Session{
		Code:         code,
		Participants: map[string]*models.Participant{},
		Settings:     models.DefaultSettings(),
		CreatedAt:    s.testNow,
	}
}

func (s *MemoryRepositoryTestSuite) TestCreateAndGetSession() {
	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession("12345")})
	s.Require().NoError(err)

	got, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: "12345"})
	s.Require().NoError(err)
	s.Equal("12345", got.Code)
	s.Equal(s.testNow, got.CreatedAt)
}

func (s *MemoryRepositoryTestSuite) TestCreateSession_CodeTaken() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession("12345")}))

	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession("12345")})
	s.ErrorIs(err, ErrCodeTaken)
}

func (s *MemoryRepositoryTestSuite) TestCreateSession_InvalidInput() {
	s.Error(s.repo.CreateSession(s.ctx, nil))
	s.Error(s.repo.CreateSession(s.ctx, &CreateSessionInput{}))
	s.Error(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: &models.Session{}}))
}

func (s *MemoryRepositoryTestSuite) TestGetSession_NotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: "99999"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *MemoryRepositoryTestSuite) TestDeleteSession() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession("12345")}))

	s.Require().NoError(s.repo.DeleteSession(s.ctx, &DeleteSessionInput{Code: "12345"}))

	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{Code: "12345"})
	s.ErrorIs(err, ErrSessionNotFound)

	err = s.repo.DeleteSession(s.ctx, &DeleteSessionInput{Code: "12345"})
	s.ErrorIs(err, ErrSessionNotFound)

	// The code is free again once deleted
	s.NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession("12345")}))
}

func (s *MemoryRepositoryTestSuite) TestListSessions() {
	for _, c := range []string{"30000", "10000", "20000"} {
		s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession(c)}))
	}

	out, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 3)
	s.Equal("10000", out.Sessions[0].Code)
	s.Equal("20000", out.Sessions[1].Code)
	s.Equal("30000", out.Sessions[2].Code)
}

func (s *MemoryRepositoryTestSuite) TestConcurrentCreateSameCode() {
	var created atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession("55555")}); err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created.Load())
}

func (s *MemoryRepositoryTestSuite) TestConcurrentCreateDistinctCodes() {
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf("%05d", 10000+i)
			s.NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession(code)}))
		}(i)
	}
	wg.Wait()

	out, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Len(out.Sessions, 50)
}

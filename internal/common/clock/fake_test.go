package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type FakeClockTestSuite struct {
	suite.Suite
	start time.Time
	clock *Fake
}

func (s *FakeClockTestSuite) SetupTest() {
	s.start = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.clock = NewFake(s.start)
}

func TestFakeClockTestSuite(t *testing.T) {
	suite.Run(t, new(FakeClockTestSuite))
}

func (s *FakeClockTestSuite) TestAdvanceRunsDueTasksInOrder() {
	var fired []string
	s.clock.AfterFunc(2*time.Minute, func() { fired = append(fired, "second") })
	s.clock.AfterFunc(time.Minute, func() { fired = append(fired, "first") })
	s.clock.AfterFunc(time.Hour, func() { fired = append(fired, "later") })

	s.clock.Advance(5 * time.Minute)

	s.Equal([]string{"first", "second"}, fired)
	s.Equal(s.start.Add(5*time.Minute), s.clock.Now())
	s.Equal(1, s.clock.Pending())
}

func (s *FakeClockTestSuite) TestStopPreventsTask() {
	fired := false
	timer := s.clock.AfterFunc(time.Minute, func() { fired = true })

	s.True(timer.Stop())
	s.False(timer.Stop())

	s.clock.Advance(time.Hour)
	s.False(fired)
}

func (s *FakeClockTestSuite) TestTaskSeesItsDueTime() {
	var seen time.Time
	s.clock.AfterFunc(90*time.Second, func() { seen = s.clock.Now() })

	s.clock.Advance(10 * time.Minute)

	s.Equal(s.start.Add(90*time.Second), seen)
}

func (s *FakeClockTestSuite) TestRescheduleFromInsideTask() {
	count := 0
	var tick func()
	tick = func() {
		count++
		s.clock.AfterFunc(time.Minute, tick)
	}
	s.clock.AfterFunc(time.Minute, tick)

	s.clock.Advance(3 * time.Minute)

	s.Equal(3, count)
	s.Equal(1, s.clock.Pending())
}

package yieldcache

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/yieldbot/base/ctx"
)

var (
	mockCtx = ctx.Background()
)

type namedSuite struct {
	suite.Suite
	clock *clock.Mock
	im    *Named[[]int]
}

func (s *namedSuite) SetupTest() {
	s.clock = clock.NewMock()
	s.im = NewNamed[[]int]("test", time.Minute, s.clock)
}

func TestNamedSuite(t *testing.T) {
	suite.Run(t, new(namedSuite))
}

func fetched(v []int) Fetcher[[]int] {
	return func(ctx.Ctx) ([]int, error) { return v, nil }
}

func (s *namedSuite) TestGetEmpty() {
	v, ok := s.im.Get()
	s.False(ok)
	s.Nil(v)
	s.False(s.im.IsValid(time.Hour))
	s.True(s.im.RefreshedAt().IsZero())
	s.Equal("test", s.im.Name())
	s.Equal(time.Minute, s.im.TTL())
}

func (s *namedSuite) TestUpdate() {
	s.Equal(UpdateSucceeded, s.im.Update(mockCtx, fetched([]int{1, 2})))

	v, present := s.im.Get()
	s.True(present)
	s.Equal([]int{1, 2}, v)
	s.Equal(s.clock.Now(), s.im.RefreshedAt())
}

func (s *namedSuite) TestFailedFetchKeepsValue() {
	s.Require().Equal(UpdateSucceeded, s.im.Update(mockCtx, fetched([]int{7})))
	refreshedAt := s.im.RefreshedAt()
	s.clock.Add(time.Second)

	status := s.im.Update(mockCtx, func(ctx.Ctx) ([]int, error) {
		return []int{8}, errors.New("upstream down")
	})
	s.Equal(UpdateFailed, status)

	v, _ := s.im.Get()
	s.Equal([]int{7}, v)
	s.Equal(refreshedAt, s.im.RefreshedAt())
}

func (s *namedSuite) TestPanickingFetchKeepsValue() {
	s.Require().Equal(UpdateSucceeded, s.im.Update(mockCtx, fetched([]int{7})))

	status := s.im.Update(mockCtx, func(ctx.Ctx) ([]int, error) {
		panic("boom")
	})
	s.Equal(UpdateFailed, status)

	v, _ := s.im.Get()
	s.Equal([]int{7}, v)

	// lock was released
	s.Equal(UpdateSucceeded, s.im.Update(mockCtx, fetched([]int{9})))
}

func (s *namedSuite) TestConcurrentUpdateSkipped() {
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan UpdateStatus)

	go func() {
		done <- s.im.Update(mockCtx, func(ctx.Ctx) ([]int, error) {
			close(started)
			<-release
			return []int{1}, nil
		})
	}()
	<-started

	calls := 0
	status := s.im.Update(mockCtx, func(ctx.Ctx) ([]int, error) {
		calls++
		return []int{2}, nil
	})
	s.Equal(UpdateSkipped, status)
	s.Equal(0, calls)

	// readers are not blocked while the update runs
	_, present := s.im.Get()
	s.False(present)

	close(release)
	s.Equal(UpdateSucceeded, <-done)
	v, _ := s.im.Get()
	s.Equal([]int{1}, v)
}

func (s *namedSuite) TestIsValid() {
	s.im.Set([]int{1})
	s.True(s.im.IsValid(time.Minute))
	s.True(s.im.Valid())

	s.clock.Add(59 * time.Second)
	s.True(s.im.Valid())

	s.clock.Add(time.Second)
	s.False(s.im.Valid())
	s.True(s.im.IsValid(2 * time.Minute))
}

func (s *namedSuite) TestSetIfAbsent() {
	s.True(s.im.SetIfAbsent([]int{1}))
	s.False(s.im.SetIfAbsent([]int{2}))
	v, _ := s.im.Get()
	s.Equal([]int{1}, v)

	s.im.Invalidate()
	_, present := s.im.Get()
	s.False(present)
	s.True(s.im.SetIfAbsent([]int{3}))
}

func (s *namedSuite) TestBeforeSwap() {
	s.im.Set([]int{1})

	var seenOld []int
	var seenNew []int
	hook := WithBeforeSwap(func(v []int) {
		seenNew = v
		seenOld, _ = s.im.Get()
	})

	s.Equal(UpdateSucceeded, s.im.Update(mockCtx, fetched([]int{2}), hook))
	s.Equal([]int{1}, seenOld)
	s.Equal([]int{2}, seenNew)

	seenNew = nil
	s.Equal(UpdateFailed, s.im.Update(mockCtx, func(ctx.Ctx) ([]int, error) {
		return nil, errors.New("fail")
	}, hook))
	s.Nil(seenNew)
}

func (s *namedSuite) TestUpdateStatusString() {
	s.Equal("succeeded", UpdateSucceeded.String())
	s.Equal("skipped", UpdateSkipped.String())
	s.Equal("failed", UpdateFailed.String())
	s.Equal("UpdateStatus(9)", UpdateStatus(9).String())
}

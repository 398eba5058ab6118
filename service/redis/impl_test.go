package redis

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/database/redisclient"
	"github.com/x-xyz/yieldbot/base/metrics"
)

var (
	mockCtx = ctx.Background()
)

type redisSuite struct {
	suite.Suite
	im *redImpl
}

func (s *redisSuite) SetupSuite() {
	uri := os.Getenv("TEST_REDIS_URI")
	if uri == "" {
		s.T().Skip("TEST_REDIS_URI not set")
	}
	s.im = New("test", metrics.NewNop(), redisclient.MustConnectRedis(uri, "")).(*redImpl)
}

func (s *redisSuite) SetupTest() {
	s.im.Del(mockCtx, "test:a", "test:b", "test:c")
}

func (s *redisSuite) TestSetGet() {
	_, err := s.im.Get(mockCtx, "test:a")
	s.Equal(ErrNotFound, err)

	s.Require().NoError(s.im.Set(mockCtx, "test:a", []byte("v"), time.Minute))
	val, err := s.im.Get(mockCtx, "test:a")
	s.Require().NoError(err)
	s.Equal([]byte("v"), val)

	ttl, err := s.im.TTL(mockCtx, "test:a")
	s.Require().NoError(err)
	s.InDelta(60, ttl, 2)

	ok, err := s.im.Exists(mockCtx, "test:a")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *redisSuite) TestScanAndDel() {
	s.Require().NoError(s.im.Set(mockCtx, "test:b", []byte("1"), Forever))
	s.Require().NoError(s.im.Set(mockCtx, "test:c", []byte("2"), Forever))

	found := []string{}
	cursor := int64(0)
	for {
		next, items, err := s.im.ScanMatch(mockCtx, cursor, "test:*", 100)
		s.Require().NoError(err)
		found = append(found, items...)
		if next == 0 {
			break
		}
		cursor = next
	}
	s.ElementsMatch([]string{"test:b", "test:c"}, found)

	n, err := s.im.Del(mockCtx, found...)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func TestNoPool(t *testing.T) {
	im := New("nopool", metrics.NewNop(), nil)
	require.Equal(t, ErrNoPool, im.Ping(mockCtx))
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, new(redisSuite))
}

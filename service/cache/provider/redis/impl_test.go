package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/service/cache/provider"
	"github.com/x-xyz/yieldbot/service/redis"
	mockRedis "github.com/x-xyz/yieldbot/service/redis/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im    *impl
	redis *mockRedis.Service
}

func (ts *testsuite) SetupTest() {
	ts.redis = &mockRedis.Service{}
	ts.im = NewRedis(ts.redis).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.redis.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.redis.On("Set", mockCtx, k, v, time.Second).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
}

func (ts *testsuite) TestGet() {
	var (
		k   = "key"
		v   = []byte("value")
		res []byte
		ttl time.Duration
		err error
	)

	ts.redis.On("Get", mockCtx, k).Return(nil, redis.ErrNotFound).Once()
	res, _, err = ts.im.Get(mockCtx, k)
	ts.Equal([]byte(nil), res)
	ts.Equal(provider.ErrNotFound, err)

	ts.redis.On("Get", mockCtx, k).Return(v, nil).Once()
	ts.redis.On("TTL", mockCtx, k).Return(int(time.Second.Seconds()), nil).Once()
	res, ttl, err = ts.im.Get(mockCtx, k)
	ts.Equal(v, res)
	ts.Equal(time.Second, ttl)
	ts.NoError(err)
}

func (ts *testsuite) TestDel() {
	ts.redis.On("Del", mockCtx, "key").Return(1, nil).Once()
	ts.NoError(ts.im.Del(mockCtx, "key"))
}

func (ts *testsuite) TestClear() {
	ts.redis.On("ScanMatch", mockCtx, int64(0), "frag:*", scanCount).Return(int64(7), []string{"frag:a", "frag:b"}, nil).Once()
	ts.redis.On("Del", mockCtx, "frag:a", "frag:b").Return(2, nil).Once()
	ts.redis.On("ScanMatch", mockCtx, int64(7), "frag:*", scanCount).Return(int64(0), []string{}, nil).Once()

	n, err := ts.im.Clear(mockCtx, "frag:")
	ts.NoError(err)
	ts.Equal(2, n)
}

func (ts *testsuite) TestClearScanFailed() {
	scanErr := errors.New("conn refused")
	ts.redis.On("ScanMatch", mockCtx, int64(0), "frag:*", scanCount).Return(int64(0), nil, scanErr).Once()

	n, err := ts.im.Clear(mockCtx, "frag:")
	ts.Equal(scanErr, err)
	ts.Equal(0, n)
}

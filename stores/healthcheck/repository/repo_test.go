package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/yieldbot/base/ctx"
	hcdomain "github.com/x-xyz/yieldbot/domain/healthcheck"
	mockRedis "github.com/x-xyz/yieldbot/service/redis/mocks"
)

type fakeMongo struct {
	err   error
	pings int
}

func (f *fakeMongo) Ping(c context.Context, rp *readpref.ReadPref) error {
	f.pings++
	if _, ok := c.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return f.err
}

func TestPingMongo(t *testing.T) {
	c := ctx.Background()
	mongo := &fakeMongo{}
	repo := New(mongo, nil)
	require.NoError(t, repo.PingMongo(c))

	mongo.err = errors.New("mongo down")
	require.Equal(t, mongo.err, repo.PingMongo(c))
	require.Equal(t, 2, mongo.pings)
}

func TestPingRedisDisabled(t *testing.T) {
	repo := New(&fakeMongo{}, nil)
	require.ErrorIs(t, repo.PingRedis(ctx.Background()), hcdomain.ErrDisabled)
}

func TestPingRedis(t *testing.T) {
	c := ctx.Background()
	r := mockRedis.NewService(t)
	repo := New(&fakeMongo{}, r)

	r.On("Ping", mock.Anything).Return(nil).Once()
	require.NoError(t, repo.PingRedis(c))

	down := errors.New("redis down")
	r.On("Ping", mock.Anything).Return(down).Once()
	require.Equal(t, down, repo.PingRedis(c))
}

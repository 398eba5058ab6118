package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/yieldbot/base/ctx"
	hcdomain "github.com/x-xyz/yieldbot/domain/healthcheck"
	"github.com/x-xyz/yieldbot/service/redis"
)

const pingTimeout = 2 * time.Second

// MongoPinger is satisfied by *mongoclient.Client
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type impl struct {
	mongo      MongoPinger
	redisCache redis.Service
}

// New pings mongo, and redis when the fragment cache lives there. redisCache may be nil.
func New(mongo MongoPinger, redisCache redis.Service) hcdomain.HealthCheckRepo {
	return &impl{
		mongo:      mongo,
		redisCache: redisCache,
	}
}

func (im *impl) PingMongo(c ctx.Ctx) error {
	pingCtx, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if err := im.mongo.Ping(pingCtx, readpref.Primary()); err != nil {
		c.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

func (im *impl) PingRedis(c ctx.Ctx) error {
	if im.redisCache == nil {
		return hcdomain.ErrDisabled
	}
	pingCtx, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if err := im.redisCache.Ping(pingCtx); err != nil {
		c.WithField("err", err).Error("ping redis error")
		return err
	}
	return nil
}

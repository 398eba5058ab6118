package redis

import (
	"time"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/service/cache/provider"
	"github.com/x-xyz/yieldbot/service/redis"
)

const scanCount = 200

type impl struct {
	redis redis.Service
}

func NewRedis(redis redis.Service) provider.Provider {
	return &impl{redis}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	if val, err := im.redis.Get(c, key); err != nil {
		if err == redis.ErrNotFound {
			return nil, time.Duration(0), provider.ErrNotFound
		}
		c.WithField("err", err).WithField("key", key).Error("redis.Get failed")
		return nil, time.Duration(0), err
	} else if ttl, err := im.redis.TTL(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.TTL failed")
		return nil, time.Duration(0), err
	} else {
		return val, time.Duration(ttl) * time.Second, nil
	}
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.redis.Set(c, key, value, ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if _, err := im.redis.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Del failed")
		return err
	}
	return nil
}

func (im *impl) Clear(c ctx.Ctx, pfx string) (int, error) {
	removed := 0
	cursor := int64(0)
	for {
		next, items, err := im.redis.ScanMatch(c, cursor, pfx+"*", scanCount)
		if err != nil {
			c.WithField("err", err).WithField("pfx", pfx).Error("redis.ScanMatch failed")
			return removed, err
		}
		if len(items) > 0 {
			n, err := im.redis.Del(c, items...)
			if err != nil {
				c.WithField("err", err).WithField("pfx", pfx).Error("redis.Del failed")
				return removed, err
			}
			removed += n
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

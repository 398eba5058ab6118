package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/yieldbot/base/ctx"
)

const (
	// Forever sets a key without expiration
	Forever = time.Duration(0)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNoPool is returned when the service was built without a pool
	ErrNoPool = errors.New("no redis pool")
)

// Service is the subset of redis commands used by the cache providers
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds, 0 for keys without expiration
	TTL(context ctx.Ctx, key string) (int, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	ScanMatch(context ctx.Ctx, cursor int64, match string, count int) (int64, []string, error)
	Ping(context ctx.Ctx) error
}

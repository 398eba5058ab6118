package primitive

import (
	"bytes"
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive is an in-process provider, size is in MB
func NewPrimitive(name string, size int) provider.Provider {
	return &impl{name, freecache.NewCache(size * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err != nil {
		if err == freecache.ErrNotFound {
			return nil, time.Duration(0), provider.ErrNotFound
		}
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return nil, time.Duration(0), err
	}

	// expireAt is a unix timestamp, 0 for entries without expiration
	ttl := time.Duration(0)
	if expireAt > 0 {
		ttl = time.Until(time.Unix(int64(expireAt), 0))
	}
	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}

func (im *impl) Clear(c ctx.Ctx, pfx string) (int, error) {
	if pfx == "" {
		n := int(im.cache.EntryCount())
		im.cache.Clear()
		return n, nil
	}

	// collect first, deleting while iterating may skip entries
	matched := [][]byte{}
	it := im.cache.NewIterator()
	for e := it.Next(); e != nil; e = it.Next() {
		if bytes.HasPrefix(e.Key, []byte(pfx)) {
			matched = append(matched, e.Key)
		}
	}

	n := 0
	for _, k := range matched {
		if im.cache.Del(k) {
			n++
		}
	}
	return n, nil
}

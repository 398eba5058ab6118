package yieldcache

import (
	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/metrics"
	"github.com/x-xyz/yieldbot/domain/keys"
	"github.com/x-xyz/yieldbot/domain/yield"
	"github.com/x-xyz/yieldbot/service/cache"
)

// Renderer turns a record into its display text, without rank decoration
type Renderer func(r yield.Record) string

// Fragments caches rendered records by pool id. A fragment lives until the
// next Clear, so a pool whose numbers changed keeps its old text until then.
type Fragments struct {
	cache  cache.Service
	render Renderer
	met    metrics.Service
}

func NewFragments(cache cache.Service, render Renderer, met metrics.Service) *Fragments {
	return &Fragments{
		cache:  cache,
		render: render,
		met:    met,
	}
}

// GetOrRender returns the cached text of poolId, rendering it on a miss. A
// broken cache degrades to rendering on every call.
func (f *Fragments) GetOrRender(c ctx.Ctx, poolId string, render func() string) string {
	text := ""
	rendered := false
	err := f.cache.GetByFunc(c, keys.MD5(poolId), &text, func() (interface{}, error) {
		rendered = true
		return render(), nil
	})
	if err != nil {
		c.WithField("err", err).WithField("poolId", poolId).Warn("fragment cache failed, rendering directly")
		f.met.BumpSum("fragment.err", 1)
		return render()
	}
	if rendered {
		f.met.BumpSum("fragment.miss", 1)
	} else {
		f.met.BumpSum("fragment.hit", 1)
	}
	return text
}

// Ranked prefixes the cached fragment of r with the emoji of rank
func (f *Fragments) Ranked(c ctx.Ctx, r yield.Record, rank int) string {
	text := f.GetOrRender(c, r.PoolId, func() string {
		return f.render(r)
	})
	return yield.RankEmoji(rank) + " " + text
}

// Clear drops every fragment
func (f *Fragments) Clear(c ctx.Ctx) {
	n, err := f.cache.Clear(c)
	if err != nil {
		c.WithField("err", err).Error("clear fragments failed")
		return
	}
	c.WithField("count", n).Info("fragments cleared")
}

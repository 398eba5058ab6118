package yieldcache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/log"
	"github.com/x-xyz/yieldbot/base/metrics"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/yield"
)

const (
	DefaultTTL            = 5 * time.Minute
	DefaultTvlFloor       = 1000000
	DefaultScopedTvlFloor = 100000

	topThreeSize = 3
	topTenSize   = 10
	scopedSize   = 3
)

const (
	nameSnapshot = "snapshot"
	nameTopOne   = "top_one"
	nameTopThree = "top_three"
	nameTopTen   = "top_ten"
	nameAssets   = "assets"
	nameChains   = "chains"
)

type Config struct {
	Store yield.RecordStore
	// Fragments is optional, without it Ranked renders every call with Render
	Fragments *Fragments
	// Render defaults to the fragments renderer, then to a plain one line summary
	Render  Renderer
	Clock   clock.Clock
	Metrics metrics.Service

	// TTL only gates the scheduled refresh, derived views stay until the next refresh
	TTL            time.Duration
	TvlFloor       float64
	ScopedTvlFloor float64
}

// Orchestrator owns the snapshot and every view derived from it
type Orchestrator struct {
	store     yield.RecordStore
	fragments *Fragments
	render    Renderer
	clock     clock.Clock
	met       metrics.Service

	ttl            time.Duration
	tvlFloor       float64
	scopedTvlFloor float64

	refreshing atomic.Bool

	snapshot *Named[yield.Snapshot]
	// topOne holds nil when no record clears the tvl floor
	topOne   *Named[*yield.Record]
	topThree *Named[[]yield.Record]
	topTen   *Named[[]yield.Record]
	assets   *Named[[]string]
	chains   *Named[[]string]
}

func New(cfg Config) yield.Service {
	return newOrchestrator(cfg)
}

func newOrchestrator(cfg Config) *Orchestrator {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNop()
	}
	if cfg.Render == nil && cfg.Fragments != nil {
		cfg.Render = cfg.Fragments.render
	}
	if cfg.Render == nil {
		cfg.Render = plainRender
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.TvlFloor <= 0 {
		cfg.TvlFloor = DefaultTvlFloor
	}
	if cfg.ScopedTvlFloor <= 0 {
		cfg.ScopedTvlFloor = DefaultScopedTvlFloor
	}

	return &Orchestrator{
		store:          cfg.Store,
		fragments:      cfg.Fragments,
		render:         cfg.Render,
		clock:          cfg.Clock,
		met:            cfg.Metrics,
		ttl:            cfg.TTL,
		tvlFloor:       cfg.TvlFloor,
		scopedTvlFloor: cfg.ScopedTvlFloor,
		snapshot:       NewNamed[yield.Snapshot](nameSnapshot, cfg.TTL, cfg.Clock),
		topOne:         NewNamed[*yield.Record](nameTopOne, cfg.TTL, cfg.Clock),
		topThree:       NewNamed[[]yield.Record](nameTopThree, cfg.TTL, cfg.Clock),
		topTen:         NewNamed[[]yield.Record](nameTopTen, cfg.TTL, cfg.Clock),
		assets:         NewNamed[[]string](nameAssets, cfg.TTL, cfg.Clock),
		chains:         NewNamed[[]string](nameChains, cfg.TTL, cfg.Clock),
	}
}

// UpdateAllCaches is the scheduled refresh, it is a no-op while the snapshot is within its ttl
func (o *Orchestrator) UpdateAllCaches(c ctx.Ctx) yield.RefreshResult {
	return o.refresh(c, false)
}

// ForceRefreshAllCaches refetches regardless of the snapshot age
func (o *Orchestrator) ForceRefreshAllCaches(c ctx.Ctx) yield.RefreshResult {
	return o.refresh(c, true)
}

func (o *Orchestrator) refresh(c ctx.Ctx, force bool) (res yield.RefreshResult) {
	res.RunId = uuid.NewString()
	c = ctx.WithLogField(c, "refreshRunId", res.RunId)
	start := o.clock.Now()
	defer func() {
		res.Duration = o.clock.Now().Sub(start)
		o.met.BumpSum("refresh", 1, "status", string(res.Status), "force", boolTag(force))
		o.met.BumpHistogram("refresh.duration", res.Duration.Seconds(), "status", string(res.Status))
	}()

	if !o.refreshing.CompareAndSwap(false, true) {
		c.Info("refresh already running, skipped")
		res.Status = yield.RefreshSkipped
		return
	}
	defer o.refreshing.Store(false)

	if !force && o.snapshot.IsValid(o.ttl) {
		snap, _ := o.snapshot.Get()
		res.Status = yield.RefreshFresh
		res.Records = len(snap)
		return
	}

	before, _ := o.topOne.Get()

	switch o.snapshot.Update(c, o.fetchSnapshot, WithBeforeSwap(func(yield.Snapshot) {
		o.invalidateDerived(c)
	})) {
	case UpdateSkipped:
		res.Status = yield.RefreshSkipped
	case UpdateFailed:
		c.WithField("force", force).Error("refresh failed, serving previous caches")
		res.Status = yield.RefreshFailed
	case UpdateSucceeded:
		snap, _ := o.snapshot.Get()
		o.recompute(snap)
		after, _ := o.topOne.Get()
		c.WithFields(log.Fields{
			"force":   force,
			"records": len(snap),
			"before":  topSummary(before),
			"after":   topSummary(after),
		}).Info("caches refreshed")
		res.Status = yield.Refreshed
		res.Records = len(snap)
	}
	return
}

func (o *Orchestrator) fetchSnapshot(c ctx.Ctx) (yield.Snapshot, error) {
	defer o.met.BumpTime("fetch.time").End()

	snap, err := o.store.FetchAll(c)
	if err != nil {
		o.met.BumpSum("fetch.err", 1)
		c.WithField("err", err).Error("store.FetchAll failed")
		return nil, err
	}
	if len(snap) == 0 {
		o.met.BumpSum("fetch.empty", 1)
		return nil, domain.ErrEmptySnapshot
	}
	return snap, nil
}

// invalidateDerived runs right before a new snapshot is installed
func (o *Orchestrator) invalidateDerived(c ctx.Ctx) {
	o.topOne.Invalidate()
	o.topThree.Invalidate()
	o.topTen.Invalidate()
	o.assets.Invalidate()
	o.chains.Invalidate()
	if o.fragments != nil {
		o.fragments.Clear(c)
	}
}

// recompute overwrites anything a reader filled from the previous snapshot
func (o *Orchestrator) recompute(snap yield.Snapshot) {
	o.topOne.Set(topOneOf(snap, o.tvlFloor))
	o.topThree.Set(TopN(snap, o.tvlFloor, topThreeSize))
	o.topTen.Set(TopN(snap, o.tvlFloor, topTenSize))
	o.assets.Set(Distinct(snap, AssetOf))
	o.chains.Set(Distinct(snap, ChainOf))
}

// fallback is the last resort of a reader that found no snapshot at all
func (o *Orchestrator) fallback(c ctx.Ctx) (yield.Snapshot, bool) {
	o.met.BumpSum("fallback", 1)

	switch o.snapshot.Update(c, o.fetchSnapshot, WithBeforeSwap(func(yield.Snapshot) {
		o.invalidateDerived(c)
	})) {
	case UpdateSucceeded:
		return o.snapshot.Get()
	case UpdateSkipped:
		// someone else is installing a snapshot, read straight from the store
		snap, err := o.fetchSnapshot(c)
		if err != nil {
			return nil, false
		}
		return snap, true
	}
	return nil, false
}

func lazy[T any](c ctx.Ctx, o *Orchestrator, n *Named[T], derive func(yield.Snapshot) (T, bool)) (T, bool) {
	if v, ok := n.Get(); ok {
		o.met.BumpSum("cache.hit", 1, "cache", n.Name())
		return v, true
	}
	o.met.BumpSum("cache.miss", 1, "cache", n.Name())

	if snap, ok := o.snapshot.Get(); ok {
		v, ok := derive(snap)
		if ok {
			n.SetIfAbsent(v)
		}
		return v, ok
	}

	snap, ok := o.fallback(c)
	if !ok {
		var zero T
		return zero, false
	}
	return derive(snap)
}

func always[T any](f func(yield.Snapshot) T) func(yield.Snapshot) (T, bool) {
	return func(s yield.Snapshot) (T, bool) {
		return f(s), true
	}
}

// Snapshot returns the installed snapshot, fetching one if none is installed yet
func (o *Orchestrator) Snapshot(c ctx.Ctx) (yield.Snapshot, bool) {
	if snap, ok := o.snapshot.Get(); ok {
		return snap, true
	}
	return o.fallback(c)
}

func (o *Orchestrator) TopAPY(c ctx.Ctx) (yield.Record, bool) {
	top, _ := lazy(c, o, o.topOne, always(func(s yield.Snapshot) *yield.Record {
		return topOneOf(s, o.tvlFloor)
	}))
	if top == nil {
		return yield.Record{}, false
	}
	return *top, true
}

func topOneOf(s yield.Snapshot, floor float64) *yield.Record {
	top, ok := TopOne(s, floor)
	if !ok {
		return nil
	}
	return &top
}

func (o *Orchestrator) TopThreeAPY(c ctx.Ctx) []yield.Record {
	res, _ := lazy(c, o, o.topThree, always(func(s yield.Snapshot) []yield.Record {
		return TopN(s, o.tvlFloor, topThreeSize)
	}))
	return res
}

func (o *Orchestrator) TopTenAPY(c ctx.Ctx) []yield.Record {
	res, _ := lazy(c, o, o.topTen, always(func(s yield.Snapshot) []yield.Record {
		return TopN(s, o.tvlFloor, topTenSize)
	}))
	return res
}

func (o *Orchestrator) Assets(c ctx.Ctx) []string {
	res, _ := lazy(c, o, o.assets, always(func(s yield.Snapshot) []string {
		return Distinct(s, AssetOf)
	}))
	return res
}

func (o *Orchestrator) Chains(c ctx.Ctx) []string {
	res, _ := lazy(c, o, o.chains, always(func(s yield.Snapshot) []string {
		return Distinct(s, ChainOf)
	}))
	return res
}

// TopAPYForAsset is the best record per chain for one asset
func (o *Orchestrator) TopAPYForAsset(c ctx.Ctx, asset string) []yield.Record {
	snap, ok := o.Snapshot(c)
	if !ok {
		return []yield.Record{}
	}
	return ScopedTop(snap, AssetMatcher(asset), ChainOf, o.scopedTvlFloor, scopedSize)
}

// TopAPYForChain is the best record per asset on one chain
func (o *Orchestrator) TopAPYForChain(c ctx.Ctx, chain string) []yield.Record {
	snap, ok := o.Snapshot(c)
	if !ok {
		return []yield.Record{}
	}
	return ScopedTop(snap, ChainMatcher(snap, chain), AssetOf, o.scopedTvlFloor, scopedSize)
}

// Ranked renders without caching when no fragment cache is configured
func (o *Orchestrator) Ranked(c ctx.Ctx, r yield.Record, rank int) string {
	if o.fragments == nil {
		return yield.RankEmoji(rank) + " " + o.render(r)
	}
	return o.fragments.Ranked(c, r, rank)
}

func (o *Orchestrator) Status(c ctx.Ctx) []yield.CacheStatus {
	return []yield.CacheStatus{
		status(o, o.snapshot, func(s yield.Snapshot) int { return len(s) }),
		status(o, o.topOne, func(r *yield.Record) int {
			if r == nil {
				return 0
			}
			return 1
		}),
		status(o, o.topThree, func(s []yield.Record) int { return len(s) }),
		status(o, o.topTen, func(s []yield.Record) int { return len(s) }),
		status(o, o.assets, func(s []string) int { return len(s) }),
		status(o, o.chains, func(s []string) int { return len(s) }),
	}
}

func status[T any](o *Orchestrator, n *Named[T], size func(T) int) yield.CacheStatus {
	st := yield.CacheStatus{Name: n.Name()}
	v, ok := n.Get()
	if !ok {
		return st
	}
	st.Present = true
	st.Valid = n.IsValid(o.ttl)
	st.Size = size(v)
	st.RefreshedAt = n.RefreshedAt()
	st.Age = o.clock.Now().Sub(st.RefreshedAt)
	return st
}

func plainRender(r yield.Record) string {
	return fmt.Sprintf("%s %s on %s: %.2f%%", r.Protocol(), r.Asset, r.Chain, r.TotalAPY())
}

func topSummary(r *yield.Record) log.Fields {
	if r == nil {
		return nil
	}
	return log.Fields{"poolId": r.PoolId, "apy": r.TotalAPY()}
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

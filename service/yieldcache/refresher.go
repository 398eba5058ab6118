package yieldcache

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/domain/yield"
)

type RefresherCfg struct {
	Caches   yield.Refresher
	Interval time.Duration
	Clock    clock.Clock
}

// Refresher triggers the scheduled refresh every interval, the first one right away
type Refresher struct {
	caches    yield.Refresher
	interval  time.Duration
	clock     clock.Clock
	stoppedCh chan interface{}
}

func NewRefresher(cfg *RefresherCfg) *Refresher {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Refresher{
		caches:    cfg.Caches,
		interval:  cfg.Interval,
		clock:     clk,
		stoppedCh: make(chan interface{}),
	}
}

func (r *Refresher) Start(c ctx.Ctx) {
	go func() {
		defer close(r.stoppedCh)
		r.Run(c)
	}()
}

func (r *Refresher) Wait() {
	<-r.stoppedCh
}

// Run blocks until c is done
func (r *Refresher) Run(c ctx.Ctx) {
	nextTick := time.Duration(0)
	for {
		select {
		case <-c.Done():
			c.Info("refresher stopped")
			return
		case <-r.clock.After(nextTick):
			res := r.caches.UpdateAllCaches(c)
			c.WithField("status", res.Status).WithField("records", res.Records).Debug("scheduled refresh done")
			nextTick = r.interval
		}
	}
}

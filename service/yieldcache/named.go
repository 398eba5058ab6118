package yieldcache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/utils"
)

// Fetcher produces a new value for a Named cache. Absence is reported as an error.
type Fetcher[T any] func(c ctx.Ctx) (T, error)

// UpdateStatus is the outcome of Named.Update
type UpdateStatus int

const (
	UpdateSucceeded UpdateStatus = iota
	// UpdateSkipped means another update held the refresh lock
	UpdateSkipped
	UpdateFailed
)

func (s UpdateStatus) String() string {
	switch s {
	case UpdateSucceeded:
		return "succeeded"
	case UpdateSkipped:
		return "skipped"
	case UpdateFailed:
		return "failed"
	}
	return fmt.Sprintf("UpdateStatus(%d)", int(s))
}

type updateOptions[T any] struct {
	beforeSwap func(T)
}

// UpdateOption is functional parameter for Named.Update
type UpdateOption[T any] func(*updateOptions[T])

// WithBeforeSwap runs f after a successful fetch, right before the new value
// becomes visible. It still runs under the refresh lock.
func WithBeforeSwap[T any](f func(T)) UpdateOption[T] {
	return func(o *updateOptions[T]) {
		o.beforeSwap = f
	}
}

// entry is immutable once published so value and timestamp are always seen together
type entry[T any] struct {
	value       T
	refreshedAt time.Time
}

// Named is a single slot cache. Reads are lock free, writers going through
// Update are collapsed by a try-lock.
type Named[T any] struct {
	name  string
	ttl   time.Duration
	clock clock.Clock

	refreshMu sync.Mutex
	current   atomic.Pointer[entry[T]]
}

func NewNamed[T any](name string, ttl time.Duration, clk clock.Clock) *Named[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Named[T]{
		name:  name,
		ttl:   ttl,
		clock: clk,
	}
}

func (n *Named[T]) Name() string {
	return n.name
}

func (n *Named[T]) TTL() time.Duration {
	return n.ttl
}

// Get returns the current value, never blocks
func (n *Named[T]) Get() (T, bool) {
	e := n.current.Load()
	if e == nil {
		var zero T
		return zero, false
	}
	return e.value, true
}

// RefreshedAt returns the time the visible value was stored, zero if absent
func (n *Named[T]) RefreshedAt() time.Time {
	if e := n.current.Load(); e != nil {
		return e.refreshedAt
	}
	return time.Time{}
}

// IsValid reports whether a value is present and younger than ttl
func (n *Named[T]) IsValid(ttl time.Duration) bool {
	e := n.current.Load()
	return e != nil && n.clock.Now().Sub(e.refreshedAt) < ttl
}

// Valid is IsValid with the ttl the cache was built with
func (n *Named[T]) Valid() bool {
	return n.IsValid(n.ttl)
}

// Update replaces the value with the result of fetch. It returns UpdateSkipped
// right away when another update is running. A failing or panicking fetch
// leaves the current value untouched.
func (n *Named[T]) Update(c ctx.Ctx, fetch Fetcher[T], opts ...UpdateOption[T]) UpdateStatus {
	if !n.refreshMu.TryLock() {
		c.WithField("cache", n.name).Info("update in progress, skipped")
		return UpdateSkipped
	}
	defer n.refreshMu.Unlock()

	o := updateOptions[T]{}
	for _, opt := range opts {
		opt(&o)
	}

	val, err := n.safeFetch(c, fetch)
	if err != nil {
		c.WithField("cache", n.name).WithField("err", err).Warn("fetch failed, keeping previous value")
		return UpdateFailed
	}

	if o.beforeSwap != nil {
		o.beforeSwap(val)
	}
	n.Set(val)
	return UpdateSucceeded
}

func (n *Named[T]) safeFetch(c ctx.Ctx, fetch Fetcher[T]) (val T, err error) {
	defer func() {
		if p := recover(); p != nil {
			c.WithField("cache", n.name).WithField("stack", string(utils.Stack(3))).Error("fetch panicked")
			err = fmt.Errorf("fetch panicked: %v", p)
		}
	}()
	return fetch(c)
}

// Set stores v unconditionally
func (n *Named[T]) Set(v T) {
	n.current.Store(&entry[T]{value: v, refreshedAt: n.clock.Now()})
}

// SetIfAbsent stores v only when the cache is empty
func (n *Named[T]) SetIfAbsent(v T) bool {
	return n.current.CompareAndSwap(nil, &entry[T]{value: v, refreshedAt: n.clock.Now()})
}

// Invalidate drops the value
func (n *Named[T]) Invalidate() {
	n.current.Store(nil)
}

package goroutine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/x-xyz/yieldbot/base/ctx"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	evt := <-RecoverableGo(
		func() {
			res = append(res, "run task")
			panic("panic")
		},
		WithName("worker"),
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
			res = append(res, p.(string))
		}),
	)

	assert.Equal(t, []string{
		"before start",
		"run task",
		"after ended",
		"after recovered",
		"panic",
	}, res)
	assert.Equal(t, "worker", evt.Name)
}

func TestRecoverableGoWithoutPanic(t *testing.T) {
	done := false
	ch := RecoverableGo(func() {
		done = true
	})
	evt, ok := <-ch
	assert.False(t, ok)
	assert.Nil(t, evt)
	assert.True(t, done)
}

func TestSuperviseRestartsAfterPanic(t *testing.T) {
	c, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()

	runs := int32(0)
	stopped := Supervise(c, "flaky", time.Millisecond, func(ctx.Ctx) {
		if atomic.AddInt32(&runs, 1) < 3 {
			panic("boom")
		}
	})

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&runs))
}

func TestSuperviseStopsOnCancel(t *testing.T) {
	c, cancel := ctx.WithCancel(ctx.Background())
	stopped := Supervise(c, "always-panics", time.Hour, func(ctx.Ctx) {
		panic("boom")
	})
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("supervisor ignored cancel")
	}
}

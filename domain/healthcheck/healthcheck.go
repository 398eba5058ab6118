package healthcheck

import (
	"errors"

	"github.com/x-xyz/yieldbot/base/ctx"
)

// ErrDisabled is returned by a ping of a dependency the process does not use
var ErrDisabled = errors.New("dependency not configured")

const (
	CheckMongo    = "mongo"
	CheckRedis    = "redis"
	CheckSnapshot = "snapshot"

	StateOk       = "ok"
	StateDown     = "down"
	StateDisabled = "disabled"
	StateMissing  = "missing"
)

// Report holds one state per check. Only the stores decide Healthy, the bot
// keeps answering without a snapshot through its fallback fetch.
type Report struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks"`
}

type HealthCheckUsecase interface {
	Check(c ctx.Ctx) Report
}

type HealthCheckRepo interface {
	PingMongo(c ctx.Ctx) error
	// PingRedis returns ErrDisabled when the fragment cache does not use redis
	PingRedis(c ctx.Ctx) error
}

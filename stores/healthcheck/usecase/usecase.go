package usecase

import (
	"errors"

	"github.com/x-xyz/yieldbot/base/ctx"
	hcdomain "github.com/x-xyz/yieldbot/domain/healthcheck"
	"github.com/x-xyz/yieldbot/domain/yield"
)

const snapshotCache = "snapshot"

type impl struct {
	repo   hcdomain.HealthCheckRepo
	caches yield.Refresher
}

// New builds the health report. caches may be nil, the snapshot check is then left out.
func New(repo hcdomain.HealthCheckRepo, caches yield.Refresher) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:   repo,
		caches: caches,
	}
}

func (im *impl) Check(c ctx.Ctx) hcdomain.Report {
	report := hcdomain.Report{Healthy: true, Checks: map[string]string{}}
	for _, check := range []struct {
		name string
		ping func(ctx.Ctx) error
	}{
		{hcdomain.CheckMongo, im.repo.PingMongo},
		{hcdomain.CheckRedis, im.repo.PingRedis},
	} {
		err := check.ping(c)
		switch {
		case err == nil:
			report.Checks[check.name] = hcdomain.StateOk
		case errors.Is(err, hcdomain.ErrDisabled):
			report.Checks[check.name] = hcdomain.StateDisabled
		default:
			report.Checks[check.name] = hcdomain.StateDown
			report.Healthy = false
		}
	}

	if im.caches != nil {
		report.Checks[hcdomain.CheckSnapshot] = hcdomain.StateMissing
		for _, st := range im.caches.Status(c) {
			if st.Name == snapshotCache && st.Present {
				report.Checks[hcdomain.CheckSnapshot] = hcdomain.StateOk
			}
		}
	}

	if !report.Healthy {
		c.WithField("checks", report.Checks).Warn("health check failed")
	}
	return report
}

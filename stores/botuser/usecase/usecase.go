package usecase

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/log"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
)

type impl struct {
	users   botuser.Repo
	actions botuser.ActionRepo
	clock   clock.Clock
}

func New(users botuser.Repo, actions botuser.ActionRepo, clk clock.Clock) botuser.Usecase {
	if clk == nil {
		clk = clock.New()
	}
	return &impl{users: users, actions: actions, clock: clk}
}

func (im *impl) GetOrCreate(c ctx.Ctx, telegramId, username string) (*botuser.User, error) {
	if u, err := im.users.FindOne(c, telegramId); err != nil {
		c.WithField("err", err).Error("users.FindOne failed")
		return nil, err
	} else if u != nil {
		return u, nil
	}

	u := botuser.User{
		TelegramId: telegramId,
		Username:   username,
		Subscribed: true,
		CreatedAt:  im.clock.Now().UTC(),
	}
	if err := im.users.Create(c, u); err == domain.ErrConflict {
		// created concurrently by another update
		return im.users.FindOne(c, telegramId)
	} else if err != nil {
		c.WithField("err", err).Error("users.Create failed")
		return nil, err
	}
	c.WithFields(log.Fields{"telegramId": telegramId, "username": username}).Info("new user registered")
	return &u, nil
}

func (im *impl) Get(c ctx.Ctx, telegramId string) (*botuser.User, error) {
	u, err := im.users.FindOne(c, telegramId)
	if err != nil {
		c.WithField("err", err).Error("users.FindOne failed")
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (im *impl) FindSubscribed(c ctx.Ctx) ([]*botuser.User, error) {
	return im.users.FindSubscribed(c)
}

func (im *impl) UpdateSubscription(c ctx.Ctx, telegramId string, subscribed bool) error {
	if err := im.users.UpdateSubscription(c, telegramId, subscribed); err != nil {
		c.WithFields(log.Fields{"telegramId": telegramId, "err": err}).Error("users.UpdateSubscription failed")
		return err
	}
	return nil
}

// IsAdmin treats lookup errors as not admin
func (im *impl) IsAdmin(c ctx.Ctx, telegramId string) bool {
	u, err := im.users.FindOne(c, telegramId)
	if err != nil {
		c.WithField("err", err).Warn("users.FindOne failed")
		return false
	}
	return u != nil && u.IsAdmin
}

func (im *impl) LogAction(c ctx.Ctx, action, telegramId, username string) {
	if botuser.IsIgnoredAction(action) || im.IsAdmin(c, telegramId) {
		return
	}
	a := botuser.Action{
		TelegramId: telegramId,
		Username:   username,
		Action:     action,
		CreatedAt:  im.clock.Now().UTC(),
	}
	if err := im.actions.Create(c, a); err != nil {
		c.WithFields(log.Fields{"action": action, "err": err}).Error("actions.Create failed")
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (im *impl) Analytics(c ctx.Ctx, now time.Time) (*botuser.Analytics, error) {
	today := startOfDay(now)
	res := &botuser.Analytics{}

	counts := []struct {
		since time.Time
		dst   *int
	}{
		{today, &res.NewUsers.Today},
		{now.Add(-7 * 24 * time.Hour), &res.NewUsers.Week},
		{now.Add(-30 * 24 * time.Hour), &res.NewUsers.Month},
		{time.Time{}, &res.NewUsers.Total},
	}
	for _, cnt := range counts {
		n, err := im.users.CountCreatedSince(c, cnt.since)
		if err != nil {
			c.WithField("err", err).Error("users.CountCreatedSince failed")
			return nil, err
		}
		*cnt.dst = n
	}

	adminIds, err := im.users.FindAdminIds(c)
	if err != nil {
		c.WithField("err", err).Error("users.FindAdminIds failed")
		return nil, err
	}

	if res.Actions, err = im.actions.CountByType(c, time.Time{}, adminIds); err != nil {
		c.WithField("err", err).Error("actions.CountByType failed")
		return nil, err
	}
	if res.TodayActions, err = im.actions.CountByType(c, today, adminIds); err != nil {
		c.WithField("err", err).Error("actions.CountByType failed")
		return nil, err
	}
	return res, nil
}

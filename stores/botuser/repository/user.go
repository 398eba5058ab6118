package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
	"github.com/x-xyz/yieldbot/service/query"
)

type userRepoImpl struct {
	q query.Mongo
}

func NewUserRepo(q query.Mongo) botuser.Repo {
	return &userRepoImpl{q}
}

func (im *userRepoImpl) FindOne(c ctx.Ctx, telegramId string) (*botuser.User, error) {
	res := &botuser.User{}
	qry := bson.M{"telegram_id": telegramId}
	if err := im.q.FindOne(c, domain.TableBotUsers, qry, res); err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *userRepoImpl) Create(c ctx.Ctx, user botuser.User) error {
	if err := im.q.Insert(c, domain.TableBotUsers, user); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *userRepoImpl) FindSubscribed(c ctx.Ctx) ([]*botuser.User, error) {
	res := []*botuser.User{}
	qry := bson.M{"subscribed": true}
	if err := im.q.Search(c, domain.TableBotUsers, 0, 0, "created_at", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *userRepoImpl) UpdateSubscription(c ctx.Ctx, telegramId string, subscribed bool) error {
	selector := bson.M{"telegram_id": telegramId}
	update := bson.M{"subscribed": subscribed}
	if err := im.q.Patch(c, domain.TableBotUsers, selector, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *userRepoImpl) FindAdminIds(c ctx.Ctx) ([]string, error) {
	admins := []*botuser.User{}
	qry := bson.M{"is_admin": true}
	if err := im.q.Search(c, domain.TableBotUsers, 0, 0, "telegram_id", qry, &admins); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.TelegramId)
	}
	return ids, nil
}

func (im *userRepoImpl) CountCreatedSince(c ctx.Ctx, since time.Time) (int, error) {
	qry := bson.M{}
	if !since.IsZero() {
		qry["created_at"] = bson.M{"$gte": since}
	}
	count, err := im.q.Count(c, domain.TableBotUsers, qry)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return count, nil
}

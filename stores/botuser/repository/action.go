package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
	"github.com/x-xyz/yieldbot/service/query"
)

type actionRepoImpl struct {
	q query.Mongo
}

func NewActionRepo(q query.Mongo) botuser.ActionRepo {
	return &actionRepoImpl{q}
}

func (im *actionRepoImpl) Create(c ctx.Ctx, action botuser.Action) error {
	if err := im.q.Insert(c, domain.TableUserActions, action); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func countByTypePipeline(since time.Time, excludeIds []string) bson.A {
	match := bson.M{}
	if len(excludeIds) > 0 {
		match["user_id"] = bson.M{"$nin": excludeIds}
	}
	if !since.IsZero() {
		match["created_at"] = bson.M{"$gte": since}
	}
	return bson.A{
		bson.M{"$match": match},
		bson.M{"$group": bson.M{"_id": "$action", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
	}
}

func (im *actionRepoImpl) CountByType(c ctx.Ctx, since time.Time, excludeIds []string) ([]botuser.ActionCount, error) {
	res := []botuser.ActionCount{}
	if err := im.q.Pipe(c, domain.TableUserActions, countByTypePipeline(since, excludeIds), &res); err != nil {
		c.WithField("err", err).Error("q.Pipe failed")
		return nil, err
	}
	return res, nil
}

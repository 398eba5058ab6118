package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
	"github.com/x-xyz/yieldbot/service/query/mocks"
)

func TestCountByTypePipeline(t *testing.T) {
	req := require.New(t)
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	p := countByTypePipeline(since, []string{"7"})
	req.Len(p, 3)
	req.Equal(bson.M{"$match": bson.M{
		"user_id":    bson.M{"$nin": []string{"7"}},
		"created_at": bson.M{"$gte": since},
	}}, p[0])

	p = countByTypePipeline(time.Time{}, nil)
	req.Equal(bson.M{"$match": bson.M{}}, p[0])
}

func TestCountByType(t *testing.T) {
	req := require.New(t)
	q := mocks.NewMongo(t)
	im := NewActionRepo(q)

	q.On("Pipe", mockCtx, domain.TableUserActions, countByTypePipeline(time.Time{}, []string{"7"}), mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*[]botuser.ActionCount) = []botuser.ActionCount{{Action: "start", Count: 5}, {Action: "show_top_1", Count: 2}}
		}).Return(nil).Once()

	res, err := im.CountByType(mockCtx, time.Time{}, []string{"7"})
	req.NoError(err)
	req.Equal([]botuser.ActionCount{{Action: "start", Count: 5}, {Action: "show_top_1", Count: 2}}, res)
}

func TestCreateAction(t *testing.T) {
	q := mocks.NewMongo(t)
	im := NewActionRepo(q)
	action := botuser.Action{TelegramId: "1", Username: "bob", Action: botuser.ActionStart}
	q.On("Insert", mockCtx, domain.TableUserActions, action).Return(nil).Once()

	require.NoError(t, im.Create(mockCtx, action))
}

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
	"github.com/x-xyz/yieldbot/service/query"
	"github.com/x-xyz/yieldbot/service/query/mocks"
)

var (
	mockCtx = ctx.Background()
	errDB   = errors.New("db down")
)

type userRepoSuite struct {
	suite.Suite

	q  *mocks.Mongo
	im botuser.Repo
}

func TestUserRepoSuite(t *testing.T) {
	suite.Run(t, new(userRepoSuite))
}

func (s *userRepoSuite) SetupTest() {
	s.q = mocks.NewMongo(s.T())
	s.im = NewUserRepo(s.q)
}

func (s *userRepoSuite) TestFindOne() {
	s.q.On("FindOne", mockCtx, domain.TableBotUsers, bson.M{"telegram_id": "42"}, mock.AnythingOfType("*botuser.User")).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*botuser.User) = botuser.User{TelegramId: "42", Username: "alice", Subscribed: true}
		}).Return(nil).Once()

	u, err := s.im.FindOne(mockCtx, "42")
	s.NoError(err)
	s.Equal("alice", u.Username)
	s.True(u.Subscribed)
}

func (s *userRepoSuite) TestFindOneMissing() {
	s.q.On("FindOne", mockCtx, domain.TableBotUsers, bson.M{"telegram_id": "42"}, mock.Anything).Return(query.ErrNotFound).Once()

	u, err := s.im.FindOne(mockCtx, "42")
	s.NoError(err)
	s.Nil(u)
}

func (s *userRepoSuite) TestFindOneError() {
	s.q.On("FindOne", mockCtx, domain.TableBotUsers, mock.Anything, mock.Anything).Return(errDB).Once()

	u, err := s.im.FindOne(mockCtx, "42")
	s.Equal(errDB, err)
	s.Nil(u)
}

func (s *userRepoSuite) TestCreateDuplicate() {
	user := botuser.User{TelegramId: "42"}
	s.q.On("Insert", mockCtx, domain.TableBotUsers, user).Return(query.ErrDuplicateKey).Once()

	s.Equal(domain.ErrConflict, s.im.Create(mockCtx, user))
}

func (s *userRepoSuite) TestFindSubscribed() {
	s.q.On("Search", mockCtx, domain.TableBotUsers, 0, 0, "created_at", bson.M{"subscribed": true}, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(6).(*[]*botuser.User) = []*botuser.User{{TelegramId: "1"}, {TelegramId: "2"}}
		}).Return(nil).Once()

	users, err := s.im.FindSubscribed(mockCtx)
	s.NoError(err)
	s.Len(users, 2)
}

func (s *userRepoSuite) TestUpdateSubscription() {
	s.q.On("Patch", mockCtx, domain.TableBotUsers, bson.M{"telegram_id": "42"}, bson.M{"subscribed": false}).Return(nil).Once()
	s.NoError(s.im.UpdateSubscription(mockCtx, "42", false))

	s.q.On("Patch", mockCtx, domain.TableBotUsers, bson.M{"telegram_id": "43"}, bson.M{"subscribed": true}).Return(query.ErrNotFound).Once()
	s.Equal(domain.ErrNotFound, s.im.UpdateSubscription(mockCtx, "43", true))
}

func (s *userRepoSuite) TestFindAdminIds() {
	s.q.On("Search", mockCtx, domain.TableBotUsers, 0, 0, "telegram_id", bson.M{"is_admin": true}, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(6).(*[]*botuser.User) = []*botuser.User{{TelegramId: "7", IsAdmin: true}}
		}).Return(nil).Once()

	ids, err := s.im.FindAdminIds(mockCtx)
	s.NoError(err)
	s.Equal([]string{"7"}, ids)
}

func (s *userRepoSuite) TestCountCreatedSince() {
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.q.On("Count", mockCtx, domain.TableBotUsers, bson.M{"created_at": bson.M{"$gte": since}}).Return(3, nil).Once()
	s.q.On("Count", mockCtx, domain.TableBotUsers, bson.M{}).Return(10, nil).Once()

	n, err := s.im.CountCreatedSince(mockCtx, since)
	s.NoError(err)
	s.Equal(3, n)

	n, err = s.im.CountCreatedSince(mockCtx, time.Time{})
	s.NoError(err)
	s.Equal(10, n)
}

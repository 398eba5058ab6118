package telegram

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/ptr"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
	"github.com/x-xyz/yieldbot/domain/mocks"
	"github.com/x-xyz/yieldbot/domain/yield"
)

var mockCtx = ctx.Background()

type fakeSender struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
	err       error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type handlerSuite struct {
	suite.Suite

	clock  *clock.Mock
	bot    *fakeSender
	yields *mocks.YieldService
	users  *mocks.BotUserUsecase
	auth   *mocks.AuthUsecase
	h      *Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.clock = clock.NewMock()
	s.clock.Set(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC))
	s.bot = &fakeSender{}
	s.yields = mocks.NewYieldService(s.T())
	s.users = mocks.NewBotUserUsecase(s.T())
	s.auth = mocks.NewAuthUsecase(s.T())
	s.h = NewHandler(HandlerCfg{
		Bot:    s.bot,
		Yields: s.yields,
		Users:  s.users,
		Auth:   s.auth,
		Clock:  s.clock,
	})
}

func callback(data string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			From: &tgbotapi.User{ID: 42, UserName: "alice"},
			Message: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: 100},
			},
			Data: data,
		},
	}
}

func command(text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 2,
		Message: &tgbotapi.Message{
			MessageID: 8,
			From:      &tgbotapi.User{ID: 42},
			Chat:      &tgbotapi.Chat{ID: 100},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		},
	}
}

func (s *handlerSuite) lastEdit() tgbotapi.EditMessageTextConfig {
	s.Require().NotEmpty(s.bot.sent)
	edit, ok := s.bot.sent[len(s.bot.sent)-1].(tgbotapi.EditMessageTextConfig)
	s.Require().True(ok, "expected an edit")
	return edit
}

func (s *handlerSuite) lastMessage() tgbotapi.MessageConfig {
	s.Require().NotEmpty(s.bot.sent)
	msg, ok := s.bot.sent[len(s.bot.sent)-1].(tgbotapi.MessageConfig)
	s.Require().True(ok, "expected a message")
	return msg
}

func (s *handlerSuite) expectLog(action string) {
	s.users.On("LogAction", mock.Anything, action, "42", mock.Anything).Return().Once()
}

func (s *handlerSuite) TestShowTopOne() {
	top := yield.Record{PoolId: "p1", APY: ptr.Float64(9)}
	s.expectLog(cbShowTop1)
	s.yields.On("TopAPY", mock.Anything).Return(top, true).Once()
	s.yields.On("Ranked", mock.Anything, top, 1).Return("🥇 fragment").Once()

	s.h.HandleUpdate(mockCtx, callback(cbShowTop1))

	edit := s.lastEdit()
	s.Equal(int64(100), edit.ChatID)
	s.Equal(7, edit.MessageID)
	s.Equal("💰TOP STABLECOIN POOL 09/03/24\n\n🥇 fragment\n\n"+tvlNotice, edit.Text)
	s.Equal(tgbotapi.ModeMarkdown, edit.ParseMode)
	s.Len(s.bot.requested, 1)
}

func (s *handlerSuite) TestShowTopOneAbsent() {
	s.expectLog(cbShowTop1)
	s.yields.On("TopAPY", mock.Anything).Return(yield.Record{}, false).Once()

	s.h.HandleUpdate(mockCtx, callback(cbShowTop1))

	edit := s.lastEdit()
	s.Equal(textNoTop, edit.Text)
	s.Empty(edit.ParseMode)
}

func (s *handlerSuite) TestShowTopThree() {
	top := []yield.Record{{PoolId: "a"}, {PoolId: "b"}}
	s.expectLog(cbShowTop3)
	s.yields.On("TopThreeAPY", mock.Anything).Return(top).Once()
	s.yields.On("Ranked", mock.Anything, top[0], 1).Return("🥇 a").Once()
	s.yields.On("Ranked", mock.Anything, top[1], 2).Return("🥈 b").Once()

	s.h.HandleUpdate(mockCtx, callback(cbShowTop3))

	s.Equal("💰TOP STABLECOIN POOLS 09/03/24\n\n🥇 a\n\n🥈 b\n\n"+tvlNotice, s.lastEdit().Text)
}

func (s *handlerSuite) TestAsset() {
	top := []yield.Record{{PoolId: "a", Asset: "USDC"}}
	s.expectLog("asset_USDC")
	s.yields.On("TopAPYForAsset", mock.Anything, "USDC").Return(top).Once()
	s.yields.On("Ranked", mock.Anything, top[0], 1).Return("🥇 a").Once()

	s.h.HandleUpdate(mockCtx, callback("asset_USDC"))

	edit := s.lastEdit()
	s.Equal("*Top APY for USDC*\n\n🥇 a", edit.Text)
	s.Equal(cbShowAssets, *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func (s *handlerSuite) TestAssetAbsent() {
	s.expectLog("asset_XYZ")
	s.yields.On("TopAPYForAsset", mock.Anything, "XYZ").Return(nil).Once()

	s.h.HandleUpdate(mockCtx, callback("asset_XYZ"))

	s.Equal("Failed to retrieve APY data for asset XYZ.", s.lastEdit().Text)
}

func (s *handlerSuite) TestChain() {
	top := []yield.Record{{PoolId: "a"}}
	s.expectLog("chain_Base")
	s.yields.On("TopAPYForChain", mock.Anything, "Base").Return(top).Once()
	s.yields.On("Ranked", mock.Anything, top[0], 1).Return("🥇 a").Once()

	s.h.HandleUpdate(mockCtx, callback("chain_Base"))

	s.Equal("✨ TOP OPPORTUNITIES ON BASE ✨\n\n🥇 a", s.lastEdit().Text)
}

func (s *handlerSuite) TestChainsPage() {
	s.expectLog("chains_page_1")
	s.yields.On("Chains", mock.Anything).Return(items(14)).Once()

	s.h.HandleUpdate(mockCtx, callback("chains_page_1"))

	edit := s.lastEdit()
	s.Equal(textSelectChain, edit.Text)
	s.Equal([]string{"A12", "A13"}, labels(edit.ReplyMarkup.InlineKeyboard[0]))
}

func (s *handlerSuite) TestAssetsPageOverflow() {
	s.expectLog("page_768614336404564651")
	s.yields.On("Assets", mock.Anything).Return(items(14)).Once()

	s.h.HandleUpdate(mockCtx, callback("page_768614336404564651"))

	edit := s.lastEdit()
	s.Equal([]string{"A12", "A13"}, labels(edit.ReplyMarkup.InlineKeyboard[0]))
}

func (s *handlerSuite) TestAssetsEmpty() {
	s.expectLog(cbShowAssets)
	s.yields.On("Assets", mock.Anything).Return([]string{}).Once()

	s.h.HandleUpdate(mockCtx, callback(cbShowAssets))

	s.Equal(textNoAssets, s.lastEdit().Text)
}

func (s *handlerSuite) TestBackToMainSendsNewMessage() {
	s.expectLog(cbBackToMain)
	s.users.On("IsAdmin", mock.Anything, "42").Return(true).Once()

	s.h.HandleUpdate(mockCtx, callback(cbBackToMain))

	msg := s.lastMessage()
	s.Contains(msg.Text, "12:00 UTC daily")
	s.Len(msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup).InlineKeyboard, 6)
}

func (s *handlerSuite) TestAnalyticsDenied() {
	s.expectLog(cbShowAnalytics)
	s.users.On("IsAdmin", mock.Anything, "42").Return(false).Once()

	s.h.HandleUpdate(mockCtx, callback(cbShowAnalytics))

	s.Equal(textAccessDenied, s.lastEdit().Text)
}

func (s *handlerSuite) TestAnalytics() {
	s.expectLog(cbShowAnalytics)
	s.users.On("IsAdmin", mock.Anything, "42").Return(true).Once()
	s.users.On("Analytics", mock.Anything, s.clock.Now()).Return(&botuser.Analytics{
		NewUsers: botuser.NewUsers{Today: 1, Week: 2, Month: 3, Total: 4},
		Actions:  []botuser.ActionCount{{Action: "show_top_1", Count: 5}},
	}, nil).Once()

	s.h.HandleUpdate(mockCtx, callback(cbShowAnalytics))

	text := s.lastEdit().Text
	s.Contains(text, "• Total: 4\n")
	s.Contains(text, "• show\\_top\\_1: 5\n")
	s.Contains(text, "No actions recorded today.")
}

func (s *handlerSuite) TestAnalyticsFailed() {
	s.expectLog(cbShowAnalytics)
	s.users.On("IsAdmin", mock.Anything, "42").Return(true).Once()
	s.users.On("Analytics", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	s.h.HandleUpdate(mockCtx, callback(cbShowAnalytics))

	s.Equal(textNoAnalytics, s.lastEdit().Text)
}

func (s *handlerSuite) TestStartRegisters() {
	s.expectLog(botuser.ActionStart)
	s.users.On("GetOrCreate", mock.Anything, "42", "user_42").Return(&botuser.User{TelegramId: "42"}, nil).Once()
	s.users.On("IsAdmin", mock.Anything, "42").Return(false).Once()

	s.h.HandleUpdate(mockCtx, command("/start"))

	msg := s.lastMessage()
	s.Equal(int64(100), msg.ChatID)
	s.Equal(tgbotapi.ModeMarkdown, msg.ParseMode)
	s.Empty(s.bot.requested)
}

func (s *handlerSuite) TestUnsubscribe() {
	s.expectLog(botuser.ActionUnsubscribe)
	s.users.On("GetOrCreate", mock.Anything, "42", "user_42").Return(&botuser.User{TelegramId: "42"}, nil).Once()
	s.users.On("UpdateSubscription", mock.Anything, "42", false).Return(nil).Once()

	s.h.HandleUpdate(mockCtx, command("/unsubscribe"))

	s.Equal(textUnsubscribed, s.lastMessage().Text)
}

func (s *handlerSuite) TestRefreshAdminOnly() {
	s.users.On("IsAdmin", mock.Anything, "42").Return(false).Once()

	s.h.HandleUpdate(mockCtx, command("/refresh"))

	s.Equal(textAccessDenied, s.lastMessage().Text)
	s.yields.AssertNotCalled(s.T(), "ForceRefreshAllCaches", mock.Anything)
}

func (s *handlerSuite) TestRefresh() {
	s.users.On("IsAdmin", mock.Anything, "42").Return(true).Once()
	s.expectLog(botuser.ActionRefresh)
	s.yields.On("ForceRefreshAllCaches", mock.Anything).Return(yield.RefreshResult{
		RunId:    "run-1",
		Status:   yield.Refreshed,
		Records:  12,
		Duration: 1500 * time.Millisecond,
	}).Once()

	s.h.HandleUpdate(mockCtx, command("/refresh"))

	s.Equal("Refresh refreshed\nrun: run-1\nrecords: 12\ntook: 1.5s", s.lastMessage().Text)
}

func (s *handlerSuite) TestSendErrorIsSwallowed() {
	s.bot.err = errors.New("telegram down")
	s.expectLog(cbFeedback)

	s.h.HandleUpdate(mockCtx, callback(cbFeedback))

	s.Equal(feedbackText(DefaultFeedbackContact), s.lastEdit().Text)
	s.Len(s.bot.requested, 1)
}

func (s *handlerSuite) TestPlainTextIgnored() {
	s.h.HandleUpdate(mockCtx, tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 1}}})
	s.Empty(s.bot.sent)
}

func (s *handlerSuite) TestToken() {
	s.auth.On("SignToken", mock.Anything, "42").Return("abc.def", nil).Once()

	s.h.HandleUpdate(mockCtx, command("/token"))

	msg := s.lastMessage()
	s.Contains(msg.Text, "`abc.def`")
	s.Equal(tgbotapi.ModeMarkdown, msg.ParseMode)
}

func (s *handlerSuite) TestTokenForbidden() {
	s.auth.On("SignToken", mock.Anything, "42").Return("", domain.ErrForbidden).Once()

	s.h.HandleUpdate(mockCtx, command("/token"))

	s.Equal(textAccessDenied, s.lastMessage().Text)
}

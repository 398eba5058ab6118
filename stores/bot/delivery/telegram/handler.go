package telegram

import (
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/log"
	"github.com/x-xyz/yieldbot/base/metrics"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
	"github.com/x-xyz/yieldbot/domain/yield"
)

const (
	DefaultFeedbackContact  = "@konstantin_hardcore"
	DefaultNotificationTime = "12:00"
)

// Sender is the subset of *tgbotapi.BotAPI the handler talks through
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type HandlerCfg struct {
	Bot    Sender
	Yields yield.Service
	Users  botuser.Usecase
	// Auth issues admin api tokens through /token, optional
	Auth             domain.AuthUsecase
	Clock            clock.Clock
	Metrics          metrics.Service
	FeedbackContact  string
	NotificationTime string
}

type Handler struct {
	bot              Sender
	yields           yield.Service
	users            botuser.Usecase
	auth             domain.AuthUsecase
	clock            clock.Clock
	met              metrics.Service
	feedbackContact  string
	notificationTime string
}

func NewHandler(cfg HandlerCfg) *Handler {
	h := &Handler{
		bot:              cfg.Bot,
		yields:           cfg.Yields,
		users:            cfg.Users,
		auth:             cfg.Auth,
		clock:            cfg.Clock,
		met:              cfg.Metrics,
		feedbackContact:  cfg.FeedbackContact,
		notificationTime: cfg.NotificationTime,
	}
	if h.clock == nil {
		h.clock = clock.New()
	}
	if h.met == nil {
		h.met = metrics.NewNop()
	}
	if h.feedbackContact == "" {
		h.feedbackContact = DefaultFeedbackContact
	}
	if h.notificationTime == "" {
		h.notificationTime = DefaultNotificationTime
	}
	return h
}

// reply is one outgoing text. edit replaces the text of the originating message.
type reply struct {
	text     string
	markup   tgbotapi.InlineKeyboardMarkup
	markdown bool
	edit     bool
}

type from struct {
	chatId     int64
	messageId  int
	telegramId string
	username   string
}

func fromUser(u *tgbotapi.User) (string, string) {
	if u == nil {
		return "", ""
	}
	id := strconv.FormatInt(u.ID, 10)
	username := u.UserName
	if username == "" {
		username = "user_" + id
	}
	return id, username
}

// HandleUpdate dispatches one update. Errors are logged, never returned.
func (h *Handler) HandleUpdate(c ctx.Ctx, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(c, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(c, update.Message)
	}
}

func (h *Handler) handleCommand(c ctx.Ctx, msg *tgbotapi.Message) {
	f := from{chatId: msg.Chat.ID, messageId: msg.MessageID}
	f.telegramId, f.username = fromUser(msg.From)
	cmd := msg.Command()
	c = ctx.WithValues(c, map[string]interface{}{"cmd": cmd, "telegramId": f.telegramId})
	h.met.BumpSum("command", 1, "cmd", cmd)

	var r *reply
	switch cmd {
	case "start":
		h.users.LogAction(c, botuser.ActionStart, f.telegramId, f.username)
		if _, err := h.users.GetOrCreate(c, f.telegramId, f.username); err != nil {
			c.WithField("err", err).Error("users.GetOrCreate failed")
		}
		r = h.menu(c, f)
	case "top":
		h.users.LogAction(c, botuser.ActionShowTop3, f.telegramId, f.username)
		r = h.topCommand(c)
	case "assets":
		h.users.LogAction(c, botuser.ActionShowAssets, f.telegramId, f.username)
		r = h.assets(c, 0)
	case "chains":
		h.users.LogAction(c, botuser.ActionShowChains, f.telegramId, f.username)
		r = h.chains(c, 0)
	case "subscribe":
		h.users.LogAction(c, botuser.ActionSubscribe, f.telegramId, f.username)
		r = h.subscribe(c, f, true)
	case "unsubscribe":
		h.users.LogAction(c, botuser.ActionUnsubscribe, f.telegramId, f.username)
		r = h.subscribe(c, f, false)
	case "refresh":
		r = h.refresh(c, f)
	case "token":
		r = h.token(c, f)
	default:
		return
	}
	h.send(c, f, r)
}

func (h *Handler) handleCallback(c ctx.Ctx, q *tgbotapi.CallbackQuery) {
	f := from{}
	if q.Message != nil {
		f.messageId = q.Message.MessageID
		if q.Message.Chat != nil {
			f.chatId = q.Message.Chat.ID
		}
	}
	f.telegramId, f.username = fromUser(q.From)
	data := q.Data
	c = ctx.WithValues(c, map[string]interface{}{"callback": data, "telegramId": f.telegramId})

	h.users.LogAction(c, data, f.telegramId, f.username)

	var r *reply
	switch {
	case data == cbShowTop1:
		r = h.topOne(c)
	case data == cbShowTop3:
		r = h.topThree(c)
	case data == cbShowAssets:
		r = h.assetsPage(c, 0)
	case data == cbShowChains:
		r = h.chainsPage(c, 0)
	case data == cbFeedback:
		r = &reply{text: feedbackText(h.feedbackContact), markup: backToMenu(), edit: true}
	case data == cbBackToMain, data == cbShowMenu:
		r = h.menu(c, f)
	case data == cbShowAnalytics:
		r = h.analytics(c, f)
	case strings.HasPrefix(data, pfxChainPage):
		r = h.chainsPage(c, parsePage(data, pfxChainPage))
	case strings.HasPrefix(data, pfxAssetPage):
		r = h.assetsPage(c, parsePage(data, pfxAssetPage))
	case strings.HasPrefix(data, pfxAsset):
		r = h.asset(c, strings.TrimPrefix(data, pfxAsset))
	case strings.HasPrefix(data, pfxChain):
		r = h.chain(c, strings.TrimPrefix(data, pfxChain))
	default:
		c.Warn("unknown callback")
	}
	if r != nil {
		h.met.BumpSum("callback", 1, "edit", strconv.FormatBool(r.edit))
		h.send(c, f, r)
	}

	// clears the loading state of the button
	if _, err := h.bot.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		c.WithField("err", err).Warn("answer callback failed")
	}
}

func (h *Handler) send(c ctx.Ctx, f from, r *reply) {
	var msg tgbotapi.Chattable
	if r.edit && f.messageId != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(f.chatId, f.messageId, r.text, r.markup)
		edit.DisableWebPagePreview = true
		if r.markdown {
			edit.ParseMode = tgbotapi.ModeMarkdown
		}
		msg = edit
	} else {
		m := tgbotapi.NewMessage(f.chatId, r.text)
		m.ReplyMarkup = r.markup
		m.DisableWebPagePreview = true
		if r.markdown {
			m.ParseMode = tgbotapi.ModeMarkdown
		}
		msg = m
	}
	if _, err := h.bot.Send(msg); err != nil {
		c.WithFields(log.Fields{"chatId": f.chatId, "err": err}).Error("bot.Send failed")
		h.met.BumpSum("send.err", 1)
	}
}

func (h *Handler) ranked(c ctx.Ctx) func(r yield.Record, rank int) string {
	return func(r yield.Record, rank int) string {
		return h.yields.Ranked(c, r, rank)
	}
}

func (h *Handler) menu(c ctx.Ctx, f from) *reply {
	return &reply{
		text:     welcomeText(h.notificationTime),
		markup:   mainMenu(h.users.IsAdmin(c, f.telegramId)),
		markdown: true,
	}
}

func (h *Handler) topOne(c ctx.Ctx) *reply {
	top, ok := h.yields.TopAPY(c)
	if !ok {
		return &reply{text: textNoTop, markup: backToMenu(), edit: true}
	}
	return &reply{
		text:     DigestText(h.clock.Now(), h.yields.Ranked(c, top, 1)),
		markup:   backToMenu(),
		markdown: true,
		edit:     true,
	}
}

func (h *Handler) topThree(c ctx.Ctx) *reply {
	top := h.yields.TopThreeAPY(c)
	if len(top) == 0 {
		return &reply{text: textNoTopThree, markup: backToMenu(), edit: true}
	}
	return &reply{
		text:     topThreeText(h.clock.Now(), RankedList(h.ranked(c), top)),
		markup:   backToMenu(),
		markdown: true,
		edit:     true,
	}
}

func (h *Handler) topCommand(c ctx.Ctx) *reply {
	top := h.yields.TopThreeAPY(c)
	if len(top) == 0 {
		return &reply{text: textNoTop, markup: backToMenu()}
	}
	return &reply{
		text:     topCommandText(RankedList(h.ranked(c), top)),
		markup:   backToMenu(),
		markdown: true,
	}
}

func (h *Handler) assets(c ctx.Ctx, page int) *reply {
	assets := h.yields.Assets(c)
	if len(assets) == 0 {
		return &reply{text: textNoAssets, markup: backToMenu()}
	}
	return &reply{text: textSelectAsset, markup: pagedKeyboard(assets, page, assetNav)}
}

func (h *Handler) assetsPage(c ctx.Ctx, page int) *reply {
	r := h.assets(c, page)
	r.edit = true
	return r
}

func (h *Handler) chains(c ctx.Ctx, page int) *reply {
	chains := h.yields.Chains(c)
	if len(chains) == 0 {
		return &reply{text: textNoChains, markup: backToMenu()}
	}
	return &reply{text: textSelectChain, markup: pagedKeyboard(chains, page, chainNav)}
}

func (h *Handler) chainsPage(c ctx.Ctx, page int) *reply {
	r := h.chains(c, page)
	r.edit = true
	return r
}

func (h *Handler) asset(c ctx.Ctx, asset string) *reply {
	top := h.yields.TopAPYForAsset(c, asset)
	if len(top) == 0 {
		return &reply{
			text:   noAssetText(asset),
			markup: backTo("Back to Assets", cbShowAssets, "Back to Main Menu"),
			edit:   true,
		}
	}
	return &reply{
		text:     assetText(asset, RankedList(h.ranked(c), top)),
		markup:   backTo("Back to Assets", cbShowAssets, "Back to Menu"),
		markdown: true,
		edit:     true,
	}
}

func (h *Handler) chain(c ctx.Ctx, chain string) *reply {
	top := h.yields.TopAPYForChain(c, chain)
	if len(top) == 0 {
		return &reply{
			text:   noChainText(chain),
			markup: backTo("Back to Chains", cbShowChains, "Back to Menu"),
			edit:   true,
		}
	}
	return &reply{
		text:     chainText(chain, RankedList(h.ranked(c), top)),
		markup:   backTo("Back to Chains", cbShowChains, "Back to Menu"),
		markdown: true,
		edit:     true,
	}
}

func (h *Handler) analytics(c ctx.Ctx, f from) *reply {
	if !h.users.IsAdmin(c, f.telegramId) {
		return &reply{text: textAccessDenied, markup: backToMenu(), edit: true}
	}
	a, err := h.users.Analytics(c, h.clock.Now())
	if err != nil {
		c.WithField("err", err).Error("users.Analytics failed")
		return &reply{text: textNoAnalytics, markup: backToMenu(), edit: true}
	}
	return &reply{text: analyticsText(a), markup: backToMenu(), markdown: true, edit: true}
}

func (h *Handler) subscribe(c ctx.Ctx, f from, subscribed bool) *reply {
	if _, err := h.users.GetOrCreate(c, f.telegramId, f.username); err != nil {
		c.WithField("err", err).Error("users.GetOrCreate failed")
		return &reply{text: textSubscribeFailed, markup: backToMenu()}
	}
	if err := h.users.UpdateSubscription(c, f.telegramId, subscribed); err != nil {
		return &reply{text: textSubscribeFailed, markup: backToMenu()}
	}
	if subscribed {
		return &reply{text: textSubscribed, markup: backToMenu()}
	}
	return &reply{text: textUnsubscribed, markup: backToMenu()}
}

func (h *Handler) refresh(c ctx.Ctx, f from) *reply {
	if !h.users.IsAdmin(c, f.telegramId) {
		return &reply{text: textAccessDenied, markup: backToMenu()}
	}
	h.users.LogAction(c, botuser.ActionRefresh, f.telegramId, f.username)
	res := h.yields.ForceRefreshAllCaches(c)
	return &reply{
		text:   refreshText(string(res.Status), res.RunId, res.Records, res.Duration),
		markup: backToMenu(),
	}
}

func (h *Handler) token(c ctx.Ctx, f from) *reply {
	if h.auth == nil {
		return &reply{text: textAccessDenied, markup: backToMenu()}
	}
	tkn, err := h.auth.SignToken(c, f.telegramId)
	if err != nil {
		return &reply{text: textAccessDenied, markup: backToMenu()}
	}
	return &reply{text: tokenText(tkn), markup: backToMenu(), markdown: true}
}

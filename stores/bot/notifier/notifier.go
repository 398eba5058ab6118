package notifier

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/log"
	"github.com/x-xyz/yieldbot/base/metrics"
	"github.com/x-xyz/yieldbot/domain/botuser"
	"github.com/x-xyz/yieldbot/domain/yield"
	"github.com/x-xyz/yieldbot/stores/bot/delivery/telegram"
)

const (
	DefaultWorkers = 8

	defaultHour   = 12
	defaultMinute = 0
)

var ErrInvalidTime = xerrors.New("notification time must be HH:MM")

// DiscordSender is the subset of *discordgo.Session used to mirror the digest
type DiscordSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type Config struct {
	Bot    telegram.Sender
	Yields yield.Reader
	Users  botuser.Usecase
	// Discord is optional, the digest is only mirrored when both it and ChannelId are set
	Discord          DiscordSender
	DiscordChannelId string
	Clock            clock.Clock
	Metrics          metrics.Service
	// Time is the daily send time in UTC, HH:MM
	Time    string
	Workers int
}

// Result counts the deliveries of one digest run
type Result struct {
	Skipped bool
	Sent    int
	Failed  int
}

type Notifier struct {
	bot       telegram.Sender
	yields    yield.Reader
	users     botuser.Usecase
	discord   DiscordSender
	channelId string
	clock     clock.Clock
	met       metrics.Service
	hour      int
	minute    int
	workers   int
	stoppedCh chan interface{}
}

// ParseTime reads HH:MM
func ParseTime(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, ErrInvalidTime
	}
	return h, m, nil
}

func New(cfg Config) *Notifier {
	n := &Notifier{
		bot:       cfg.Bot,
		yields:    cfg.Yields,
		users:     cfg.Users,
		discord:   cfg.Discord,
		channelId: cfg.DiscordChannelId,
		clock:     cfg.Clock,
		met:       cfg.Metrics,
		workers:   cfg.Workers,
		stoppedCh: make(chan interface{}),
	}
	if n.clock == nil {
		n.clock = clock.New()
	}
	if n.met == nil {
		n.met = metrics.NewNop()
	}
	if n.workers <= 0 {
		n.workers = DefaultWorkers
	}
	h, m, err := ParseTime(cfg.Time)
	if err != nil {
		log.Log().WithFields(log.Fields{"time": cfg.Time, "err": err}).Warn("invalid notification time, using 12:00 UTC")
		h, m = defaultHour, defaultMinute
	}
	n.hour, n.minute = h, m
	return n
}

// NextRun is the first send time strictly after now
func (n *Notifier) NextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), n.hour, n.minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (n *Notifier) Start(c ctx.Ctx) {
	go func() {
		defer close(n.stoppedCh)
		n.Run(c)
	}()
}

func (n *Notifier) Wait() {
	<-n.stoppedCh
}

// Run sends the digest every day at the configured time until c is done
func (n *Notifier) Run(c ctx.Ctx) {
	c.WithField("at", fmt.Sprintf("%02d:%02d UTC", n.hour, n.minute)).Info("daily notification scheduled")
	for {
		now := n.clock.Now()
		wait := n.NextRun(now).Sub(now)
		select {
		case <-c.Done():
			c.Info("notifier stopped")
			return
		case <-n.clock.After(wait):
			res := n.SendDigest(c)
			c.WithFields(log.Fields{"skipped": res.Skipped, "sent": res.Sent, "failed": res.Failed}).Info("daily notification done")
		}
	}
}

// SendDigest sends today's top pool to every subscribed user. A failed send
// is logged and does not stop the others.
func (n *Notifier) SendDigest(c ctx.Ctx) Result {
	defer n.met.BumpTime("digest.time").End()

	top, ok := n.yields.TopAPY(c)
	if !ok {
		c.Warn("no top pool available, daily notification skipped")
		n.met.BumpSum("digest.skipped", 1)
		return Result{Skipped: true}
	}
	now := n.clock.Now()
	text := telegram.DigestText(now, n.yields.Ranked(c, top, 1))

	n.mirror(c, top, now)

	subs, err := n.users.FindSubscribed(c)
	if err != nil {
		c.WithField("err", err).Error("users.FindSubscribed failed")
		return Result{}
	}
	if len(subs) == 0 {
		return Result{}
	}

	b := goroutines.NewBatch(n.workers, goroutines.WithBatchSize(len(subs)))
	defer b.Close()
	for i := range subs {
		user := subs[i]
		b.Queue(func() (interface{}, error) {
			return nil, n.sendTo(c, user, text)
		})
	}
	b.QueueComplete()

	res := Result{}
	for ret := range b.Results() {
		if ret.Error() != nil {
			res.Failed++
			continue
		}
		res.Sent++
	}
	n.met.BumpSum("digest.sent", float64(res.Sent))
	n.met.BumpSum("digest.failed", float64(res.Failed))
	return res
}

func (n *Notifier) sendTo(c ctx.Ctx, user *botuser.User, text string) error {
	chatId, err := strconv.ParseInt(user.TelegramId, 10, 64)
	if err != nil {
		c.WithFields(log.Fields{"telegramId": user.TelegramId, "err": err}).Error("invalid telegram id")
		return err
	}
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = telegram.DigestKeyboard()
	if _, err := n.bot.Send(msg); err != nil {
		c.WithFields(log.Fields{"telegramId": user.TelegramId, "err": err}).Error("send notification failed")
		return err
	}
	n.users.LogAction(c, botuser.ActionNotificationSent, user.TelegramId, user.Username)
	return nil
}

func digestEmbed(top yield.Record, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "💰 Top stablecoin pool " + now.UTC().Format("02/01/06"),
		URL:   top.SiteUrl,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Asset", Value: top.Asset, Inline: true},
			{Name: "Chain", Value: top.Chain, Inline: true},
			{Name: "Protocol", Value: top.Protocol(), Inline: true},
			{Name: "APY Total", Value: telegram.FormatAPY(top.APY), Inline: true},
			{Name: "APY Base", Value: telegram.FormatAPY(top.APYBase), Inline: true},
			{Name: "APY Reward", Value: telegram.FormatAPY(top.APYReward), Inline: true},
			{Name: "Avg APY 30d", Value: telegram.FormatAPY(top.APYMean30d), Inline: true},
			{Name: "TVL", Value: telegram.FormatTvl(top.Tvl), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Only the pools with more than $1M TVL are shown"},
	}
	return embed
}

func (n *Notifier) mirror(c ctx.Ctx, top yield.Record, now time.Time) {
	if n.discord == nil || n.channelId == "" {
		return
	}
	if _, err := n.discord.ChannelMessageSendEmbed(n.channelId, digestEmbed(top, now)); err != nil {
		c.WithFields(log.Fields{"channelId": n.channelId, "err": err}).Error("discord.ChannelMessageSendEmbed failed")
		n.met.BumpSum("digest.discord.err", 1)
	}
}

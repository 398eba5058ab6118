package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/log"
)

const (
	DefaultPollTimeout = 30
	DefaultWorkers     = 16

	scheduleTimeout = 3 * time.Second
)

// UpdatesSource is the long polling side of *tgbotapi.BotAPI
type UpdatesSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type ServerCfg struct {
	Source UpdatesSource
	// PollTimeout is the long poll timeout in seconds
	PollTimeout int
	Workers     int
}

// Server polls updates and hands them to the handler on a worker pool
type Server struct {
	source      UpdatesSource
	handler     *Handler
	pollTimeout int
	pool        *goroutines.Pool
}

func NewServer(cfg ServerCfg, handler *Handler) *Server {
	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Server{
		source:      cfg.Source,
		handler:     handler,
		pollTimeout: timeout,
		pool:        goroutines.NewPool(workers, goroutines.WithTaskQueueLength(workers*4)),
	}
}

// Run blocks until c is done or the updates channel closes
func (s *Server) Run(c ctx.Ctx) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = s.pollTimeout
	updates := s.source.GetUpdatesChan(u)
	defer s.pool.Release()
	defer s.source.StopReceivingUpdates()

	c.WithField("pollTimeout", s.pollTimeout).Info("telegram polling started")
	for {
		select {
		case <-c.Done():
			c.Info("telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				c.Warn("telegram updates channel closed")
				return
			}
			s.dispatch(c, update)
		}
	}
}

func (s *Server) dispatch(c ctx.Ctx, update tgbotapi.Update) {
	uc := ctx.WithLogField(c, "updateId", update.UpdateID)
	err := s.pool.ScheduleWithTimeout(scheduleTimeout, func() {
		defer func() {
			if p := recover(); p != nil {
				uc.WithFields(log.Fields{"panic": p}).Error("update handler panicked")
			}
		}()
		s.handler.HandleUpdate(uc, update)
	})
	if err != nil {
		uc.WithField("err", err).Error("pool.ScheduleWithTimeout failed, dropping update")
	}
}
